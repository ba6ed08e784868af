package user

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Maksim-Burtsev/test-webapp/app/observability/metrics"
	"github.com/Maksim-Burtsev/test-webapp/internal/api"
)

type UserHandler struct {
	UserService UserService
	logger      *slog.Logger
}

func NewUserHandler(userService UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		UserService: userService,
		logger:      logger,
	}
}

// CreateUser handles POST /users/.
// 201 with {id, email} on success, 400 for malformed JSON, 422 for missing
// fields, 409 for a duplicate email, 500 otherwise.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("UserHandler").Start(r.Context(), "CreateUser", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/users"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreateUser"))

	start := time.Now()
	status := "error"
	defer func() {
		m := metrics.Get()
		m.UserCreateRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
		m.UserCreateDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()

	var req UserCreateRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		status = "invalid"
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// Structural validation only; the service is never invoked for a
	// payload that fails it.
	if req.Email == "" || req.Password == "" {
		l.WarnContext(ctx, "Missing required fields")
		span.SetStatus(codes.Error, "Missing required fields")
		status = "invalid"
		api.ErrorResponse(w, r, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	u, err := h.UserService.CreateUser(ctx, req)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, api.ErrConflict) {
			span.SetStatus(codes.Error, "Email already registered")
			status = "conflict"
			api.ErrorResponse(w, r, http.StatusConflict, "email already registered")
			return
		}
		l.ErrorContext(ctx, "Failed to create user", slog.Any("error", err))
		span.SetStatus(codes.Error, "Failed to create user")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	span.SetStatus(codes.Ok, "User created")
	status = "created"
	api.WriteJSONResponse(w, r, http.StatusCreated, u.Public())
}
