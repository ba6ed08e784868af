package user

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Maksim-Burtsev/test-webapp/internal/api"
)

// MockUserRepo is a mock implementation of the UserRepository interface
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) CreateUser(ctx context.Context, data UserCreateRequest) (*User, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) GetUserByID(ctx context.Context, id int64) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestCreateUserService(t *testing.T) {
	mockRepo := new(MockUserRepo)
	logger := slog.Default()
	service := NewUserService(mockRepo, logger)

	t.Run("Success", func(t *testing.T) {
		ctx := context.Background()
		req := UserCreateRequest{Email: "test@gmail.com", Password: "test_password12456"}
		created := &User{
			ID:        1,
			Email:     req.Email,
			Password:  "$2a$10$notarealhash",
			CreatedAt: time.Now(),
			IsActive:  true,
		}

		mockRepo.On("CreateUser", ctx, req).Return(created, nil).Once()

		u, err := service.CreateUser(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, created, u)
		mockRepo.AssertExpectations(t)
	})

	t.Run("ConflictPassesThroughUnchanged", func(t *testing.T) {
		ctx := context.Background()
		req := UserCreateRequest{Email: "dup@x.com", Password: "secret1"}

		mockRepo.On("CreateUser", ctx, req).Return(nil, api.ErrConflict).Once()

		u, err := service.CreateUser(ctx, req)

		assert.Nil(t, u)
		assert.ErrorIs(t, err, api.ErrConflict)
		mockRepo.AssertExpectations(t)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		ctx := context.Background()
		req := UserCreateRequest{Email: "test@gmail.com", Password: "secret1"}

		mockRepo.On("CreateUser", ctx, req).Return(nil, errors.New("pool exhausted")).Once()

		u, err := service.CreateUser(ctx, req)

		assert.Nil(t, u)
		assert.Error(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestGetUserByIDService(t *testing.T) {
	mockRepo := new(MockUserRepo)
	service := NewUserService(mockRepo, slog.Default())

	t.Run("Success", func(t *testing.T) {
		ctx := context.Background()
		existing := &User{ID: 42, Email: "test@gmail.com", IsActive: true}

		mockRepo.On("GetUserByID", ctx, int64(42)).Return(existing, nil).Once()

		u, err := service.GetUserByID(ctx, 42)

		assert.NoError(t, err)
		assert.Equal(t, existing, u)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctx := context.Background()

		mockRepo.On("GetUserByID", ctx, int64(999)).Return(nil, api.ErrNotFound).Once()

		u, err := service.GetUserByID(ctx, 999)

		assert.Nil(t, u)
		assert.ErrorIs(t, err, api.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}
