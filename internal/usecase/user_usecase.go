package usecase

import (
	"context"
	"errors"

	"go-skillmarket-backend/internal/domain"
	"go-skillmarket-backend/pkg/apperror"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userUsecase struct {
	userRepo  domain.UserRepository
	skillRepo domain.SkillRepository
	jobRepo   domain.JobRepository
}

func NewUserUsecase(userRepo domain.UserRepository, skillRepo domain.SkillRepository, jobRepo domain.JobRepository) domain.UserUsecase {
	return &userUsecase{userRepo: userRepo, skillRepo: skillRepo, jobRepo: jobRepo}
}

func (u *userUsecase) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal("Could not load profile", err)
	}
	return user, nil
}

func (u *userUsecase) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update domain.UserUpdate) (*domain.User, error) {
	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyUserUpdate(user, update)

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.Internal("Could not save profile", err)
	}
	return user, nil
}

func applyUserUpdate(user *domain.User, update domain.UserUpdate) {
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.ProfilePicture != nil {
		user.ProfilePicture = *update.ProfilePicture
	}
	if update.Location != nil {
		user.Location = *update.Location
	}
	if update.Professional != nil {
		user.Professional = *update.Professional
	}
	if update.Education != nil {
		user.Education = *update.Education
	}
	if update.SocialLinks != nil {
		user.SocialLinks = *update.SocialLinks
	}
	if update.Preferences != nil {
		if update.Preferences.JobAlerts != nil {
			user.Preferences.JobAlerts = *update.Preferences.JobAlerts
		}
		if update.Preferences.EmailNotifications != nil {
			user.Preferences.EmailNotifications = *update.Preferences.EmailNotifications
		}
		if update.Preferences.Privacy != nil {
			user.Preferences.Privacy = *update.Preferences.Privacy
		}
	}
}

func (u *userUsecase) GetPublicProfile(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := u.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperror.NotFound("User not found")
	}
	if user.Preferences.Privacy == domain.PrivacyPrivate {
		return nil, apperror.Forbidden("This profile is private")
	}
	return user.PublicView(), nil
}

func (u *userUsecase) Search(ctx context.Context, filter domain.UserFilter, page domain.PageQuery) ([]domain.User, domain.Pagination, error) {
	// Default ranking: most experienced first. The _id tie-break keeps
	// equally experienced profiles in newest-first order.
	page.Normalize("professional_info.experience")
	users, total, err := u.userRepo.Search(ctx, filter, page)
	if err != nil {
		return nil, domain.Pagination{}, apperror.Internal("Could not search users", err)
	}
	for i := range users {
		users[i] = *users[i].PublicView()
	}
	return users, domain.NewPagination(page, len(users), total), nil
}

func (u *userUsecase) SetProfilePicture(ctx context.Context, userID primitive.ObjectID, url string) error {
	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	user.ProfilePicture = url
	if err := u.userRepo.Update(ctx, user); err != nil {
		return apperror.Internal("Could not save profile picture", err)
	}
	return nil
}

func (u *userUsecase) RemoveProfilePicture(ctx context.Context, userID primitive.ObjectID) error {
	return u.SetProfilePicture(ctx, userID, "")
}

func (u *userUsecase) GetStats(ctx context.Context, userID primitive.ObjectID) (*domain.UserStats, error) {
	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	skills, err := u.skillRepo.CountByUser(ctx, userID, domain.SkillTypeSkill)
	if err != nil {
		return nil, apperror.Internal("Could not count skills", err)
	}
	certs, err := u.skillRepo.CountByUser(ctx, userID, domain.SkillTypeCertification)
	if err != nil {
		return nil, apperror.Internal("Could not count certifications", err)
	}
	applications, err := u.jobRepo.CountByApplicant(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("Could not count applications", err)
	}

	return &domain.UserStats{
		ProfileCompletion:   user.ProfileCompletion(),
		SkillsCount:         skills,
		CertificationsCount: certs,
		ApplicationsCount:   applications,
		MemberSince:         user.CreatedAt,
		LastActive:          user.LastLogin,
	}, nil
}

// DeleteAccount removes the account and cascades to the user's skills.
// Applications and reviews embedded in other documents are left behind.
func (u *userUsecase) DeleteAccount(ctx context.Context, actor *domain.User, targetID primitive.ObjectID) error {
	if err := canModify(actor, targetID); err != nil {
		return err
	}
	if err := u.userRepo.Delete(ctx, targetID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal("Could not delete account", err)
	}
	if err := u.skillRepo.DeleteByUser(ctx, targetID); err != nil {
		return apperror.Internal("Could not delete account skills", err)
	}
	return nil
}
