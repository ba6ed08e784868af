package container

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/Maksim-Burtsev/test-webapp/app/db"
	"github.com/Maksim-Burtsev/test-webapp/config"
	"github.com/Maksim-Burtsev/test-webapp/internal/api/user"
	"github.com/Maksim-Burtsev/test-webapp/internal/security"
)

// Container is the composition root: every long-lived component is
// constructed here exactly once, in dependency order, and wired by explicit
// constructor injection. One live connection pool per container instance.
type Container struct {
	Config      *config.Config
	Logger      *slog.Logger
	DatabaseURL string
	Pool        *pgxpool.Pool
	UserRepo    user.UserRepository
	UserService user.UserService
	UserHandler *user.UserHandler
}

// NewContainer resolves the connection settings and builds the full
// dependency graph: settings → pool → hasher → repository → service → handler.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	return build(cfg, logger, dbConfig.ConnectionURL, pool), nil
}

// NewTestContainer builds an independent graph against an explicit database
// URL. It touches no shared state, so concurrently running containers do not
// affect each other.
func NewTestContainer(databaseURL string, logger *slog.Logger) (*Container, error) {
	pool, err := database.Init(databaseURL, logger)
	if err != nil {
		return nil, err
	}

	return build(nil, logger, databaseURL, pool), nil
}

func build(cfg *config.Config, logger *slog.Logger, databaseURL string, pool *pgxpool.Pool) *Container {
	hasher := security.NewBcryptHasher()

	userRepo := user.NewPostgresUserRepo(pool, hasher, logger)
	userService := user.NewUserService(userRepo, logger)
	userHandler := user.NewUserHandler(userService, logger)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		DatabaseURL: databaseURL,
		Pool:        pool,
		UserRepo:    userRepo,
		UserService: userService,
		UserHandler: userHandler,
	}
}

// Close releases all resources held by the container.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready.
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}

// RunMigrations applies the embedded database migrations.
func (c *Container) RunMigrations() error {
	return database.RunMigrations(c.DatabaseURL, c.Logger)
}
