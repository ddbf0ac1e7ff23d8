package usecase

import (
	"context"
	"errors"
	"time"

	"go-skillmarket-backend/internal/domain"
	"go-skillmarket-backend/pkg/apperror"
	"go-skillmarket-backend/pkg/upload"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type skillUsecase struct {
	skillRepo domain.SkillRepository
}

func NewSkillUsecase(skillRepo domain.SkillRepository) domain.SkillUsecase {
	return &skillUsecase{skillRepo: skillRepo}
}

func (u *skillUsecase) List(ctx context.Context, actor *domain.User, filter domain.SkillFilter) ([]domain.Skill, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}
	skills, err := u.skillRepo.ListByUser(ctx, actor.ID, filter)
	if err != nil {
		return nil, apperror.Internal("Could not list skills", err)
	}
	return skills, nil
}

func (u *skillUsecase) GetDetails(ctx context.Context, actor *domain.User, id primitive.ObjectID) (*domain.Skill, error) {
	skill, err := u.skillRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Skill not found")
		}
		return nil, apperror.Internal("Could not load skill", err)
	}
	// Private entries are visible to their owner and admins only.
	if !skill.IsPublic {
		if err := canModify(actor, skill.User); err != nil {
			return nil, apperror.NotFound("Skill not found")
		}
	}
	return skill, nil
}

func (u *skillUsecase) Create(ctx context.Context, actor *domain.User, skill *domain.Skill) error {
	if actor == nil {
		return apperror.Unauthorized("Authentication required")
	}
	if err := validateVariant(skill); err != nil {
		return err
	}

	skill.User = actor.ID
	skill.Endorsements = nil
	skill.EndorsementCount = 0
	now := time.Now()
	skill.CreatedAt = now
	skill.UpdatedAt = now

	if err := u.skillRepo.Create(ctx, skill); err != nil {
		return apperror.Internal("Could not create skill", err)
	}
	return nil
}

// validateVariant enforces the per-type shape of the document: a plain
// skill needs a proficiency level and carries no certification block; a
// certification needs issuer and obtained date, with expiry after the
// obtained date when present.
func validateVariant(skill *domain.Skill) error {
	switch skill.Type {
	case domain.SkillTypeSkill:
		if skill.ProficiencyLevel == "" {
			return apperror.BadRequest("Proficiency level is required for skills")
		}
		if skill.Certification != nil && skill.Certification.PDFFile != nil {
			upload.Cleanup(skill.Certification.PDFFile.Path)
		}
		skill.Certification = nil
	case domain.SkillTypeCertification:
		if skill.Certification == nil {
			return apperror.BadRequest("Certification details are required for certifications")
		}
		cert := skill.Certification
		if cert.Issuer == "" {
			return apperror.BadRequest("Certification issuer is required")
		}
		if cert.DateObtained.IsZero() {
			return apperror.BadRequest("Certification date obtained is required")
		}
		if cert.ExpiryDate != nil && !cert.ExpiryDate.After(cert.DateObtained) {
			return apperror.BadRequest("Expiry date must be after the date obtained")
		}
		skill.ProficiencyLevel = ""
		skill.Detail = nil
	default:
		return apperror.BadRequest("Type must be skill or certification")
	}
	return nil
}

func (u *skillUsecase) Update(ctx context.Context, actor *domain.User, id primitive.ObjectID, update domain.SkillUpdate, pdf *domain.PDFFile) (*domain.Skill, error) {
	skill, err := u.skillRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Skill not found")
		}
		return nil, apperror.Internal("Could not load skill", err)
	}
	if err := canModify(actor, skill.User); err != nil {
		return nil, err
	}

	applySkillUpdate(skill, update)

	if pdf != nil {
		if skill.Type != domain.SkillTypeCertification {
			return nil, apperror.BadRequest("PDF uploads only apply to certifications")
		}
		if skill.Certification == nil {
			skill.Certification = &domain.Certification{}
		}
		// A replaced PDF leaves no orphan on disk.
		if old := skill.Certification.PDFFile; old != nil && old.Path != pdf.Path {
			upload.Cleanup(old.Path)
		}
		skill.Certification.PDFFile = pdf
	}
	if err := validateVariant(skill); err != nil {
		return nil, err
	}

	if err := u.skillRepo.Update(ctx, skill); err != nil {
		return nil, apperror.Internal("Could not save skill", err)
	}
	return skill, nil
}

func applySkillUpdate(skill *domain.Skill, update domain.SkillUpdate) {
	if update.Name != nil {
		skill.Name = *update.Name
	}
	if update.Category != nil {
		skill.Category = *update.Category
	}
	if update.Description != nil {
		skill.Description = *update.Description
	}
	if update.Icon != nil {
		skill.Icon = *update.Icon
	}
	if update.URL != nil {
		skill.URL = *update.URL
	}
	if update.Tags != nil {
		skill.Tags = *update.Tags
	}
	if update.IsPublic != nil {
		skill.IsPublic = *update.IsPublic
	}

	// Variant fields only land on a matching document type.
	if skill.Type == domain.SkillTypeSkill {
		if update.ProficiencyLevel != nil {
			skill.ProficiencyLevel = *update.ProficiencyLevel
		}
		if update.Detail != nil {
			skill.Detail = update.Detail
		}
	}
	if skill.Type == domain.SkillTypeCertification && update.Certification != nil {
		if skill.Certification == nil {
			skill.Certification = &domain.Certification{}
		}
		cert := skill.Certification
		c := update.Certification
		if c.Issuer != nil {
			cert.Issuer = *c.Issuer
		}
		if c.Level != nil {
			cert.Level = *c.Level
		}
		if c.DateObtained != nil {
			cert.DateObtained = *c.DateObtained
		}
		if c.ExpiryDate != nil {
			cert.ExpiryDate = c.ExpiryDate
		}
		if c.CertificationID != nil {
			cert.CertificationID = *c.CertificationID
		}
	}
}

func (u *skillUsecase) Delete(ctx context.Context, actor *domain.User, id primitive.ObjectID) error {
	skill, err := u.skillRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Skill not found")
		}
		return apperror.Internal("Could not load skill", err)
	}
	if err := canModify(actor, skill.User); err != nil {
		return err
	}
	if err := u.skillRepo.Delete(ctx, id); err != nil {
		return apperror.Internal("Could not delete skill", err)
	}
	if skill.Certification != nil && skill.Certification.PDFFile != nil {
		upload.Cleanup(skill.Certification.PDFFile.Path)
	}
	return nil
}

func (u *skillUsecase) ListPublic(ctx context.Context, userID primitive.ObjectID) ([]domain.Skill, error) {
	skills, err := u.skillRepo.ListPublicByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("Could not list public skills", err)
	}
	return skills, nil
}

func (u *skillUsecase) Endorse(ctx context.Context, actor *domain.User, skillID primitive.ObjectID) (int64, error) {
	if actor == nil {
		return 0, apperror.Unauthorized("Authentication required")
	}
	skill, err := u.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, apperror.NotFound("Skill not found")
		}
		return 0, apperror.Internal("Could not load skill", err)
	}
	if skill.User == actor.ID {
		return 0, apperror.BadRequest("You cannot endorse your own skill")
	}

	count, err := u.skillRepo.AddEndorsement(ctx, skillID, domain.Endorsement{User: actor.ID, Date: time.Now()})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return 0, apperror.Conflict("You have already endorsed this skill")
		case errors.Is(err, domain.ErrNotFound):
			return 0, apperror.NotFound("Skill not found")
		default:
			return 0, apperror.Internal("Could not endorse skill", err)
		}
	}
	return count, nil
}

func (u *skillUsecase) RemoveEndorsement(ctx context.Context, actor *domain.User, skillID primitive.ObjectID) (int64, error) {
	if actor == nil {
		return 0, apperror.Unauthorized("Authentication required")
	}
	count, err := u.skillRepo.RemoveEndorsement(ctx, skillID, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, apperror.NotFound("Skill not found")
		}
		return 0, apperror.Internal("Could not remove endorsement", err)
	}
	return count, nil
}

func (u *skillUsecase) Stats(ctx context.Context, actor *domain.User) (*domain.SkillStats, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}
	stats, err := u.skillRepo.Stats(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal("Could not compute skill stats", err)
	}
	return stats, nil
}
