package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-skillmarket-backend/internal/domain"
	"go-skillmarket-backend/pkg/apperror"
	"go-skillmarket-backend/pkg/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *auth.Manager
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *auth.Manager) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, tokens: tokens}
}

func (u *authUsecase) Register(ctx context.Context, user *domain.User, plainPassword string) (string, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcryptCost)
	if err != nil {
		return "", apperror.Internal("Could not process password", err)
	}
	user.Password = string(hash)

	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if user.Preferences.Privacy == "" {
		user.Preferences = domain.Preferences{
			JobAlerts:          true,
			EmailNotifications: true,
			Privacy:            domain.PrivacyPublic,
		}
	}
	user.IsActive = true
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.LastLogin = now

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return "", apperror.Conflict("An account with this email already exists")
		}
		return "", apperror.Internal("Could not create account", err)
	}

	token, err := u.tokens.Issue(user.ID.Hex())
	if err != nil {
		return "", apperror.Internal("Could not issue token", err)
	}
	return token, nil
}

func (u *authUsecase) Login(ctx context.Context, email, plainPassword string) (string, *domain.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, apperror.Unauthorized("Invalid credentials")
		}
		return "", nil, apperror.Internal("Could not look up account", err)
	}
	if !user.IsActive {
		return "", nil, apperror.Unauthorized("Account is deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plainPassword)) != nil {
		return "", nil, apperror.Unauthorized("Invalid credentials")
	}

	now := time.Now()
	if err := u.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return "", nil, apperror.Internal("Could not record login", err)
	}
	user.LastLogin = now

	token, err := u.tokens.Issue(user.ID.Hex())
	if err != nil {
		return "", nil, apperror.Internal("Could not issue token", err)
	}
	return token, user, nil
}

// ResolveUser turns a verified token subject into the live account,
// rejecting deleted or deactivated users.
func (u *authUsecase) ResolveUser(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid token subject")
	}
	user, err := u.userRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Account no longer exists")
		}
		return nil, apperror.Internal("Could not look up account", err)
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized("Account is deactivated")
	}
	return user, nil
}
