package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-skillmarket-backend/internal/domain"
	"go-skillmarket-backend/internal/usecase"
	"go-skillmarket-backend/pkg/apperror"
	"go-skillmarket-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func testTokens() *auth.Manager {
	return auth.NewManager("test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes password and issues a token", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			u.ID = primitive.NewObjectID()
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("hunter2hunter2")))
			assert.Equal(t, domain.RoleUser, u.Role)
			assert.True(t, u.IsActive)
		})

		user := &domain.User{FirstName: "Ada", LastName: "Lovelace", Email: "Ada@Example.com"}
		token, err := uc.Register(ctx, user, "hunter2hunter2")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())
		mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)

		_, err := uc.Register(ctx, &domain.User{Email: "dup@example.com"}, "password123")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	account := func() *domain.User {
		return &domain.User{
			ID:       primitive.NewObjectID(),
			Email:    "ada@example.com",
			Password: string(hash),
			IsActive: true,
		}
	}

	t.Run("valid credentials return token and user", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())
		mockRepo.On("GetByEmail", ctx, "ada@example.com").Return(account(), nil)
		mockRepo.On("UpdateLastLogin", ctx, mock.Anything, mock.Anything).Return(nil)

		token, user, err := uc.Login(ctx, "Ada@Example.com", "correct-horse")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())
		mockRepo.On("GetByEmail", ctx, "ada@example.com").Return(account(), nil)

		_, _, err := uc.Login(ctx, "ada@example.com", "wrong")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
	})

	t.Run("unknown email is unauthorized, not not-found", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())
		mockRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound)

		_, _, err := uc.Login(ctx, "ghost@example.com", "whatever")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		deactivated := account()
		deactivated.IsActive = false
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())
		mockRepo.On("GetByEmail", ctx, "ada@example.com").Return(deactivated, nil)

		_, _, err := uc.Login(ctx, "ada@example.com", "correct-horse")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
	})
}

func TestResolveUser(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips an issued token subject", func(t *testing.T) {
		tokens := testTokens()
		id := primitive.NewObjectID()
		token, err := tokens.Issue(id.Hex())
		assert.NoError(t, err)
		subject, err := tokens.Verify(token)
		assert.NoError(t, err)

		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)
		mockRepo.On("GetByID", ctx, id).Return(&domain.User{ID: id, IsActive: true}, nil)

		user, err := uc.ResolveUser(ctx, subject)
		assert.NoError(t, err)
		assert.Equal(t, id, user.ID)
	})

	t.Run("malformed subject is unauthorized", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(new(MockUserRepo), testTokens())
		_, err := uc.ResolveUser(ctx, "not-an-object-id")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
	})

	t.Run("deactivated account is rejected", func(t *testing.T) {
		id := primitive.NewObjectID()
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())
		mockRepo.On("GetByID", ctx, id).Return(&domain.User{ID: id, IsActive: false}, nil)

		_, err := uc.ResolveUser(ctx, id.Hex())
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
	})
}
