package user

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Maksim-Burtsev/test-webapp/app/observability/metrics"
	"github.com/Maksim-Burtsev/test-webapp/internal/api"
)

func TestMain(m *testing.M) {
	// The default MeterProvider is a no-op; instruments still work.
	metrics.InitAppMetrics()
	os.Exit(m.Run())
}

// MockUserService is a mock implementation of the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, data UserCreateRequest) (*User, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id int64) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestCreateUserHandler(t *testing.T) {
	mockService := new(MockUserService)
	logger := slog.Default()
	handler := NewUserHandler(mockService, logger)

	t.Run("Success", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{
			"email":    "test@gmail.com",
			"password": "test_password12456",
		})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		created := &User{
			ID:        1,
			Email:     "test@gmail.com",
			Password:  "$2a$10$notarealhash",
			CreatedAt: time.Now(),
			IsActive:  true,
		}
		mockService.On("CreateUser", mock.Anything, UserCreateRequest{
			Email:    "test@gmail.com",
			Password: "test_password12456",
		}).Return(created, nil).Once()

		handler.CreateUser(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		// The body must contain exactly id and email; never the hash,
		// created_at or is_active.
		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Len(t, response, 2)
		assert.Equal(t, float64(1), response["id"])
		assert.Equal(t, "test@gmail.com", response["email"])

		mockService.AssertExpectations(t)
	})

	t.Run("InvalidRequestBody", func(t *testing.T) {
		body := []byte(`{"email": "test@gmail.com", "password":}`)
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.CreateUser(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CreateUser")
	})

	t.Run("MissingPassword", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"email": "test@gmail.com"})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.CreateUser(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockService.AssertNotCalled(t, "CreateUser")
	})

	t.Run("MissingEmail", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"password": "secret1"})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.CreateUser(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockService.AssertNotCalled(t, "CreateUser")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{
			"email":    "dup@x.com",
			"password": "secret1",
		})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		mockService.On("CreateUser", mock.Anything, UserCreateRequest{
			Email:    "dup@x.com",
			Password: "secret1",
		}).Return(nil, api.ErrConflict).Once()

		handler.CreateUser(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, false, response["success"])

		mockService.AssertExpectations(t)
	})

	t.Run("InternalServerError", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{
			"email":    "test@gmail.com",
			"password": "secret1",
		})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		mockService.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, errors.New("pool exhausted")).Once()

		handler.CreateUser(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		mockService.AssertExpectations(t)
	})
}
