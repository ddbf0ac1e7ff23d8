package usecase

import (
	"go-skillmarket-backend/internal/domain"
	"go-skillmarket-backend/pkg/apperror"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// canModify gates every mutation on an owned resource: admins pass,
// owners pass, everyone else is rejected.
func canModify(actor *domain.User, owner primitive.ObjectID) error {
	if actor == nil {
		return apperror.Unauthorized("Authentication required")
	}
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if actor.ID == owner {
		return nil
	}
	return apperror.Forbidden("Not authorized to modify this resource")
}

// requireRole passes when the actor holds any of the listed roles.
// Admins always pass.
func requireRole(actor *domain.User, roles ...string) error {
	if actor == nil {
		return apperror.Unauthorized("Authentication required")
	}
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	for _, role := range roles {
		if actor.Role == role {
			return nil
		}
	}
	return apperror.Forbidden("Insufficient role for this operation")
}
