package user

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ UserService = (*UserServiceImpl)(nil)

// UserService is the orchestration seam between the transport boundary and
// the repository. Cross-cutting policy (duplicate-email pre-checks, events)
// belongs here, not in the handler or the repository.
type UserService interface {
	CreateUser(ctx context.Context, data UserCreateRequest) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
}

type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepository
}

func NewUserService(repo UserRepository, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

// CreateUser delegates to the repository. Typed failures pass through
// unchanged so the handler can map them to transport status codes.
func (s *UserServiceImpl) CreateUser(ctx context.Context, data UserCreateRequest) (*User, error) {
	ctx, span := otel.Tracer("UserService").Start(ctx, "CreateUser", trace.WithAttributes(
		attribute.String("user.email", data.Email),
	))
	defer span.End()

	u, err := s.repo.CreateUser(ctx, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create user")
		return nil, err
	}

	span.SetStatus(codes.Ok, "User created")
	return u, nil
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id int64) (*User, error) {
	ctx, span := otel.Tracer("UserService").Start(ctx, "GetUserByID", trace.WithAttributes(
		attribute.Int64("user.id", id),
	))
	defer span.End()

	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch user")
		return nil, err
	}

	span.SetStatus(codes.Ok, "User fetched")
	return u, nil
}
