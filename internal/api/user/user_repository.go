package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Maksim-Burtsev/test-webapp/app/observability/metrics"
	"github.com/Maksim-Burtsev/test-webapp/internal/api"
	"github.com/Maksim-Burtsev/test-webapp/internal/security"
)

const uniqueViolationCode = "23505"

var _ UserRepository = (*PostgresUserRepo)(nil)

// UserRepository is the only component allowed to touch the persistence
// session directly.
type UserRepository interface {
	// CreateUser hashes the password, inserts the new row inside a single
	// short-lived transaction and returns the entity with store-assigned
	// id and created_at. A uniqueness violation surfaces as api.ErrConflict.
	CreateUser(ctx context.Context, data UserCreateRequest) (*User, error)

	// GetUserByID fetches a persisted user, hashed credential included.
	// Returns api.ErrNotFound if no such row exists.
	GetUserByID(ctx context.Context, id int64) (*User, error)
}

// PGXPool is the subset of *pgxpool.Pool the repository needs.
// pgxmock satisfies it in tests.
type PGXPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresUserRepo struct {
	logger *slog.Logger
	pgpool PGXPool
	hasher security.Hasher
}

func NewPostgresUserRepo(pgpool PGXPool, hasher security.Hasher, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger: logger,
		pgpool: pgpool,
		hasher: hasher,
	}
}

func (r *PostgresUserRepo) CreateUser(ctx context.Context, data UserCreateRequest) (*User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "CreateUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "CreateUser"), slog.String("email", data.Email))

	hashedPassword, err := r.hasher.Hash(data.Password)
	if err != nil {
		l.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := r.pgpool.Begin(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Begin failed")
		return nil, fmt.Errorf("database error starting transaction: %w", err)
	}
	// Rollback is a no-op after a successful commit; this guarantees the
	// session is released on every exit path, cancellation included.
	defer func() { _ = tx.Rollback(ctx) }()

	u := User{Email: data.Email, Password: hashedPassword}

	start := time.Now()
	err = tx.QueryRow(ctx,
		`INSERT INTO users (email, password)
         VALUES ($1, $2)
         RETURNING id, created_at, is_active`,
		data.Email, hashedPassword,
	).Scan(&u.ID, &u.CreatedAt, &u.IsActive)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("query", "insert_user")))
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("query", "insert_user")))
		span.RecordError(err)

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			l.WarnContext(ctx, "Duplicate email rejected by unique constraint")
			span.SetStatus(codes.Error, "Unique constraint violation")
			return nil, fmt.Errorf("email %q: %w", data.Email, api.ErrConflict)
		}

		l.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		span.SetStatus(codes.Error, "DB insert failed")
		return nil, fmt.Errorf("database error inserting user: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		l.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Commit failed")
		return nil, fmt.Errorf("database error committing user: %w", err)
	}

	l.InfoContext(ctx, "User created", slog.Int64("userID", u.ID))
	span.SetStatus(codes.Ok, "User created")
	return &u, nil
}

func (r *PostgresUserRepo) GetUserByID(ctx context.Context, id int64) (*User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "GetUserByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	var u User
	start := time.Now()
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, email, password, created_at, is_active
         FROM users
         WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.Password, &u.CreatedAt, &u.IsActive)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("query", "get_user_by_id")))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "User not found")
			return nil, fmt.Errorf("user %d: %w", id, api.ErrNotFound)
		}
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("query", "get_user_by_id")))
		r.logger.ErrorContext(ctx, "Failed to query user", slog.Any("error", err), slog.Int64("userID", id))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching user: %w", err)
	}

	span.SetStatus(codes.Ok, "User fetched")
	return &u, nil
}
