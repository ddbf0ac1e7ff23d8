package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-skillmarket-backend/internal/domain"
	"go-skillmarket-backend/internal/usecase"
	"go-skillmarket-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func publicAccount() *domain.User {
	return &domain.User{
		ID:        primitive.NewObjectID(),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+1-555-0100",
		Password:  "hash",
		IsActive:  true,
		Preferences: domain.Preferences{
			Privacy: domain.PrivacyPublic,
		},
	}
}

func TestPublicProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("public view strips contact details", func(t *testing.T) {
		account := publicAccount()
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockSkillRepo), new(MockJobRepo))
		userRepo.On("GetByID", ctx, account.ID).Return(account, nil)

		view, err := uc.GetPublicProfile(ctx, account.ID)
		assert.NoError(t, err)
		assert.Empty(t, view.Email)
		assert.Empty(t, view.Phone)
		assert.Empty(t, view.Password)
		assert.Equal(t, "Ada", view.FirstName)
	})

	t.Run("private profile is forbidden", func(t *testing.T) {
		account := publicAccount()
		account.Preferences.Privacy = domain.PrivacyPrivate
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockSkillRepo), new(MockJobRepo))
		userRepo.On("GetByID", ctx, account.ID).Return(account, nil)

		_, err := uc.GetPublicProfile(ctx, account.ID)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("deactivated profile reads as absent", func(t *testing.T) {
		account := publicAccount()
		account.IsActive = false
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockSkillRepo), new(MockJobRepo))
		userRepo.On("GetByID", ctx, account.ID).Return(account, nil)

		_, err := uc.GetPublicProfile(ctx, account.ID)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestUpdateProfileAllowList(t *testing.T) {
	ctx := context.Background()
	account := publicAccount()

	userRepo := new(MockUserRepo)
	uc := usecase.NewUserUsecase(userRepo, new(MockSkillRepo), new(MockJobRepo))
	userRepo.On("GetByID", ctx, account.ID).Return(account, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	bio := "Systems tinkerer"
	updated, err := uc.UpdateProfile(ctx, account.ID, domain.UserUpdate{Bio: &bio})
	assert.NoError(t, err)
	assert.Equal(t, "Systems tinkerer", updated.Bio)
	// Untouched fields survive a partial update.
	assert.Equal(t, "ada@example.com", updated.Email)
	assert.Equal(t, "Ada", updated.FirstName)
}

func TestUserStats(t *testing.T) {
	ctx := context.Background()
	account := publicAccount()
	account.CreatedAt = time.Now().Add(-30 * 24 * time.Hour)

	userRepo := new(MockUserRepo)
	skillRepo := new(MockSkillRepo)
	jobRepo := new(MockJobRepo)
	uc := usecase.NewUserUsecase(userRepo, skillRepo, jobRepo)

	userRepo.On("GetByID", ctx, account.ID).Return(account, nil)
	skillRepo.On("CountByUser", ctx, account.ID, domain.SkillTypeSkill).Return(int64(7), nil)
	skillRepo.On("CountByUser", ctx, account.ID, domain.SkillTypeCertification).Return(int64(2), nil)
	jobRepo.On("CountByApplicant", ctx, account.ID).Return(int64(4), nil)

	stats, err := uc.GetStats(ctx, account.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), stats.SkillsCount)
	assert.Equal(t, int64(2), stats.CertificationsCount)
	assert.Equal(t, int64(4), stats.ApplicationsCount)
	assert.Equal(t, account.CreatedAt, stats.MemberSince)
	assert.Equal(t, account.ProfileCompletion(), stats.ProfileCompletion)
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	target := publicAccount()

	t.Run("stranger cannot delete another account", func(t *testing.T) {
		uc := usecase.NewUserUsecase(new(MockUserRepo), new(MockSkillRepo), new(MockJobRepo))
		err := uc.DeleteAccount(ctx, plainUser(), target.ID)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("self-delete cascades to skills", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewUserUsecase(userRepo, skillRepo, new(MockJobRepo))
		actor := &domain.User{ID: target.ID, Role: domain.RoleUser}
		userRepo.On("Delete", ctx, target.ID).Return(nil)
		skillRepo.On("DeleteByUser", ctx, target.ID).Return(nil)

		assert.NoError(t, uc.DeleteAccount(ctx, actor, target.ID))
		skillRepo.AssertCalled(t, "DeleteByUser", ctx, target.ID)
	})

	t.Run("admin may delete any account", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewUserUsecase(userRepo, skillRepo, new(MockJobRepo))
		userRepo.On("Delete", ctx, target.ID).Return(nil)
		skillRepo.On("DeleteByUser", ctx, target.ID).Return(nil)

		assert.NoError(t, uc.DeleteAccount(ctx, admin(), target.ID))
	})
}

func TestUserSearchPublicViews(t *testing.T) {
	ctx := context.Background()
	account := publicAccount()

	userRepo := new(MockUserRepo)
	uc := usecase.NewUserUsecase(userRepo, new(MockSkillRepo), new(MockJobRepo))
	userRepo.On("Search", ctx, mock.Anything, mock.Anything).Return([]domain.User{*account}, int64(1), nil)

	users, pagination, err := uc.Search(ctx, domain.UserFilter{Query: "ada"}, domain.PageQuery{})
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Empty(t, users[0].Email)
	assert.Empty(t, users[0].Phone)
	assert.Equal(t, int64(1), pagination.TotalItems)
	assert.Equal(t, 1, pagination.TotalPages)
}
