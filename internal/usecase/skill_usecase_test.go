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

func TestSkillVariantValidation(t *testing.T) {
	ctx := context.Background()
	actor := plainUser()

	t.Run("plain skill without proficiency is rejected", func(t *testing.T) {
		uc := usecase.NewSkillUsecase(new(MockSkillRepo))
		err := uc.Create(ctx, actor, &domain.Skill{Type: domain.SkillTypeSkill, Name: "Go"})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("certification without details is rejected", func(t *testing.T) {
		uc := usecase.NewSkillUsecase(new(MockSkillRepo))
		err := uc.Create(ctx, actor, &domain.Skill{Type: domain.SkillTypeCertification, Name: "CKA"})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("expiry on or before the obtained date is rejected", func(t *testing.T) {
		uc := usecase.NewSkillUsecase(new(MockSkillRepo))
		obtained := time.Now()
		err := uc.Create(ctx, actor, &domain.Skill{
			Type: domain.SkillTypeCertification,
			Name: "CKA",
			Certification: &domain.Certification{
				Issuer:       "CNCF",
				DateObtained: obtained,
				ExpiryDate:   &obtained,
			},
		})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("create strips the mismatched variant and stamps ownership", func(t *testing.T) {
		mockRepo := new(MockSkillRepo)
		uc := usecase.NewSkillUsecase(mockRepo)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Skill")).Return(nil)

		skill := &domain.Skill{
			Type:             domain.SkillTypeSkill,
			Name:             "Go",
			ProficiencyLevel: "Advanced",
			Certification:    &domain.Certification{Issuer: "nobody"},
		}
		assert.NoError(t, uc.Create(ctx, actor, skill))
		assert.Equal(t, actor.ID, skill.User)
		assert.Nil(t, skill.Certification)
		assert.Zero(t, skill.EndorsementCount)
	})
}

func TestSkillVisibility(t *testing.T) {
	ctx := context.Background()
	owner := plainUser()

	privateSkill := func() *domain.Skill {
		return &domain.Skill{
			ID:       primitive.NewObjectID(),
			User:     owner.ID,
			Type:     domain.SkillTypeSkill,
			Name:     "Go",
			IsPublic: false,
		}
	}

	t.Run("private entry reads as absent to strangers", func(t *testing.T) {
		skill := privateSkill()
		mockRepo := new(MockSkillRepo)
		uc := usecase.NewSkillUsecase(mockRepo)
		mockRepo.On("GetByID", ctx, skill.ID).Return(skill, nil)

		_, err := uc.GetDetails(ctx, plainUser(), skill.ID)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("owner sees their private entry", func(t *testing.T) {
		skill := privateSkill()
		mockRepo := new(MockSkillRepo)
		uc := usecase.NewSkillUsecase(mockRepo)
		mockRepo.On("GetByID", ctx, skill.ID).Return(skill, nil)

		got, err := uc.GetDetails(ctx, owner, skill.ID)
		assert.NoError(t, err)
		assert.Equal(t, skill.ID, got.ID)
	})
}

func TestSkillEndorsements(t *testing.T) {
	ctx := context.Background()
	owner := plainUser()

	publicSkill := func() *domain.Skill {
		return &domain.Skill{
			ID:       primitive.NewObjectID(),
			User:     owner.ID,
			Type:     domain.SkillTypeSkill,
			IsPublic: true,
		}
	}

	t.Run("self-endorsement is rejected", func(t *testing.T) {
		skill := publicSkill()
		mockRepo := new(MockSkillRepo)
		uc := usecase.NewSkillUsecase(mockRepo)
		mockRepo.On("GetByID", ctx, skill.ID).Return(skill, nil)

		_, err := uc.Endorse(ctx, owner, skill.ID)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("duplicate endorsement maps to conflict", func(t *testing.T) {
		skill := publicSkill()
		mockRepo := new(MockSkillRepo)
		uc := usecase.NewSkillUsecase(mockRepo)
		mockRepo.On("GetByID", ctx, skill.ID).Return(skill, nil)
		mockRepo.On("AddEndorsement", ctx, skill.ID, mock.Anything).Return(int64(0), domain.ErrDuplicate)

		_, err := uc.Endorse(ctx, plainUser(), skill.ID)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})

	t.Run("endorsement returns the updated count", func(t *testing.T) {
		skill := publicSkill()
		mockRepo := new(MockSkillRepo)
		uc := usecase.NewSkillUsecase(mockRepo)
		mockRepo.On("GetByID", ctx, skill.ID).Return(skill, nil)
		mockRepo.On("AddEndorsement", ctx, skill.ID, mock.Anything).Return(int64(3), nil)

		count, err := uc.Endorse(ctx, plainUser(), skill.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestSkillUpdateOwnership(t *testing.T) {
	ctx := context.Background()
	owner := plainUser()
	skill := &domain.Skill{
		ID:               primitive.NewObjectID(),
		User:             owner.ID,
		Type:             domain.SkillTypeSkill,
		Name:             "Go",
		ProficiencyLevel: "Advanced",
		IsPublic:         true,
	}

	t.Run("stranger cannot update", func(t *testing.T) {
		mockRepo := new(MockSkillRepo)
		uc := usecase.NewSkillUsecase(mockRepo)
		mockRepo.On("GetByID", ctx, skill.ID).Return(skill, nil)

		_, err := uc.Update(ctx, plainUser(), skill.ID, domain.SkillUpdate{}, nil)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("pdf on a plain skill is rejected", func(t *testing.T) {
		mockRepo := new(MockSkillRepo)
		uc := usecase.NewSkillUsecase(mockRepo)
		mockRepo.On("GetByID", ctx, skill.ID).Return(skill, nil)

		_, err := uc.Update(ctx, owner, skill.ID, domain.SkillUpdate{}, &domain.PDFFile{Filename: "cert.pdf"})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})
}
