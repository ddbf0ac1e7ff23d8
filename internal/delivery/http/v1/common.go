package v1

import (
	"strconv"

	"go-skillmarket-backend/internal/domain"
	"go-skillmarket-backend/pkg/apperror"
	"go-skillmarket-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// objectIDParam parses a path parameter as an ObjectID; malformed ids
// surface as 400, never as a database miss.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, apperror.BadRequest("Invalid id format")
	}
	return id, nil
}

// bindJSON binds and reports validator failures as itemized messages.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return apperror.Validation(validation.FormatValidationErrors(err))
		}
		return apperror.BadRequest("Invalid request body")
	}
	return nil
}

// pageQuery reads the shared pagination and sort parameters. Malformed
// numbers fall back to defaults rather than erroring.
func pageQuery(c *gin.Context) domain.PageQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return domain.PageQuery{
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
}
