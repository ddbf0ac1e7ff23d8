package v1

import (
	"testing"

	"go-skillmarket-backend/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func validExamRequest() CreateExamRequest {
	score := 72
	return CreateExamRequest{
		Name:         "Cloud Architect Associate",
		Code:         "CAA-101",
		Category:     "Cloud",
		Provider:     domain.Provider{Name: "Acme"},
		Description:  "Validates core cloud architecture skills.",
		Level:        "Associate",
		Duration:     90,
		PassingScore: &score,
	}
}

func TestCreateExamRequestBounds(t *testing.T) {
	t.Run("well-formed request passes", func(t *testing.T) {
		req := validExamRequest()
		assert.NoError(t, binding.Validator.ValidateStruct(&req))
	})

	t.Run("a passing score of zero is legal", func(t *testing.T) {
		req := validExamRequest()
		zero := 0
		req.PassingScore = &zero
		assert.NoError(t, binding.Validator.ValidateStruct(&req))
	})

	t.Run("passing score is required", func(t *testing.T) {
		req := validExamRequest()
		req.PassingScore = nil
		assert.Error(t, binding.Validator.ValidateStruct(&req))
	})

	t.Run("passing score is capped at 100", func(t *testing.T) {
		req := validExamRequest()
		over := 150
		req.PassingScore = &over
		assert.Error(t, binding.Validator.ValidateStruct(&req))
	})

	t.Run("duration is bounded to 15..480 minutes", func(t *testing.T) {
		req := validExamRequest()
		req.Duration = 10
		assert.Error(t, binding.Validator.ValidateStruct(&req))

		req.Duration = 500
		assert.Error(t, binding.Validator.ValidateStruct(&req))

		req.Duration = 480
		assert.NoError(t, binding.Validator.ValidateStruct(&req))
	})
}

func TestUpdateExamRequestBounds(t *testing.T) {
	t.Run("empty update passes", func(t *testing.T) {
		req := UpdateExamRequest{}
		assert.NoError(t, binding.Validator.ValidateStruct(&req))
	})

	t.Run("out-of-range values are rejected", func(t *testing.T) {
		over := 150
		req := UpdateExamRequest{PassingScore: &over}
		assert.Error(t, binding.Validator.ValidateStruct(&req))

		short := 10
		req = UpdateExamRequest{Duration: &short}
		assert.Error(t, binding.Validator.ValidateStruct(&req))
	})
}
