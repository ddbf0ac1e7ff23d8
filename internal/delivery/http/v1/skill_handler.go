package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go-skillmarket-backend/internal/delivery/http/middleware"
	"go-skillmarket-backend/internal/delivery/http/response"
	"go-skillmarket-backend/internal/domain"
	"go-skillmarket-backend/pkg/apperror"
	"go-skillmarket-backend/pkg/upload"
	"go-skillmarket-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type SkillHandler struct {
	skillUC domain.SkillUsecase
	saver   *upload.Saver
}

func NewSkillHandler(public *gin.RouterGroup, protected *gin.RouterGroup, skillUC domain.SkillUsecase, saver *upload.Saver) {
	handler := &SkillHandler{skillUC: skillUC, saver: saver}

	public.GET("/skills/public/:userId", handler.ListPublic)

	skills := protected.Group("/skills")
	{
		skills.GET("", handler.List)
		skills.GET("/:id", handler.GetDetails)
		skills.POST("", handler.Create)
		skills.PUT("/:id", handler.Update)
		skills.DELETE("/:id", handler.Delete)
		skills.POST("/:id/endorse", handler.Endorse)
		skills.DELETE("/:id/endorse", handler.RemoveEndorsement)
		skills.GET("/stats/overview", handler.Stats)
	}
}

type CertificationRequest struct {
	Issuer          string     `json:"issuer"`
	Level           string     `json:"level"`
	DateObtained    time.Time  `json:"dateObtained"`
	ExpiryDate      *time.Time `json:"expiryDate"`
	CertificationID string     `json:"certificationId"`
}

type CreateSkillRequest struct {
	Type             string                `json:"type" binding:"required,oneof=skill certification"`
	Name             string                `json:"name" binding:"required,min=2,max=100"`
	Category         string                `json:"category" binding:"required"`
	ProficiencyLevel string                `json:"proficiencyLevel" binding:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
	Description      string                `json:"description" binding:"omitempty,max=1000"`
	Icon             string                `json:"icon"`
	URL              string                `json:"url" binding:"omitempty,url"`
	Certification    *CertificationRequest `json:"certification"`
	Detail           *domain.SkillDetail   `json:"skill"`
	IsPublic         *bool                 `json:"isPublic"`
	Tags             []string              `json:"tags"`
}

type UpdateSkillRequest struct {
	Name             *string                     `json:"name" binding:"omitempty,min=2,max=100"`
	Category         *string                     `json:"category"`
	Description      *string                     `json:"description" binding:"omitempty,max=1000"`
	Icon             *string                     `json:"icon"`
	URL              *string                     `json:"url" binding:"omitempty,url"`
	Tags             *[]string                   `json:"tags"`
	IsPublic         *bool                       `json:"isPublic"`
	ProficiencyLevel *string                     `json:"proficiencyLevel" binding:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
	Certification    *UpdateCertificationRequest `json:"certification"`
	Detail           *domain.SkillDetail         `json:"skill"`
}

type UpdateCertificationRequest struct {
	Issuer          *string    `json:"issuer"`
	Level           *string    `json:"level"`
	DateObtained    *time.Time `json:"dateObtained"`
	ExpiryDate      *time.Time `json:"expiryDate"`
	CertificationID *string    `json:"certificationId"`
}

// bindPayload accepts either a plain JSON body or a multipart form with
// the JSON payload in the "data" field and an optional "pdfFile" part.
// The caller owns cleanup of the returned file on a failed request.
func (h *SkillHandler) bindPayload(c *gin.Context, req interface{}) (*domain.PDFFile, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, bindJSON(c, req)
	}

	data := c.PostForm("data")
	if data == "" {
		return nil, apperror.BadRequest("Missing data field in multipart form")
	}
	if err := json.Unmarshal([]byte(data), req); err != nil {
		return nil, apperror.BadRequest("Invalid JSON in data field")
	}
	if err := binding.Validator.ValidateStruct(req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return nil, apperror.Validation(validation.FormatValidationErrors(err))
		}
		return nil, apperror.BadRequest("Invalid request body")
	}

	header, err := c.FormFile("pdfFile")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperror.BadRequest("Invalid pdfFile upload")
	}
	saved, err := h.saver.Save(header)
	if err != nil {
		return nil, err
	}
	return &domain.PDFFile{
		Filename:     saved.Filename,
		OriginalName: saved.OriginalName,
		Path:         saved.Path,
		Size:         saved.Size,
		UploadedAt:   time.Now(),
	}, nil
}

func (h *SkillHandler) List(c *gin.Context) {
	filter := domain.SkillFilter{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	skills, err := h.skillUC.List(c.Request.Context(), middleware.CurrentUser(c), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skills", gin.H{
		"skills": skills,
		"count":  len(skills),
	})
}

func (h *SkillHandler) GetDetails(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	skill, err := h.skillUC.GetDetails(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill details", skill)
}

func (h *SkillHandler) Create(c *gin.Context) {
	var req CreateSkillRequest
	pdf, err := h.bindPayload(c, &req)
	if err != nil {
		c.Error(err)
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	skill := &domain.Skill{
		Type:             req.Type,
		Name:             req.Name,
		Category:         req.Category,
		ProficiencyLevel: req.ProficiencyLevel,
		Description:      req.Description,
		Icon:             req.Icon,
		URL:              req.URL,
		Detail:           req.Detail,
		IsPublic:         isPublic,
		Tags:             req.Tags,
	}
	if req.Certification != nil {
		skill.Certification = &domain.Certification{
			Issuer:          req.Certification.Issuer,
			Level:           req.Certification.Level,
			DateObtained:    req.Certification.DateObtained,
			ExpiryDate:      req.Certification.ExpiryDate,
			CertificationID: req.Certification.CertificationID,
			PDFFile:         pdf,
		}
	} else if pdf != nil {
		skill.Certification = &domain.Certification{PDFFile: pdf}
	}

	if err := h.skillUC.Create(c.Request.Context(), middleware.CurrentUser(c), skill); err != nil {
		if pdf != nil {
			upload.Cleanup(pdf.Path)
		}
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Skill created", skill)
}

func (h *SkillHandler) Update(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req UpdateSkillRequest
	pdf, err := h.bindPayload(c, &req)
	if err != nil {
		c.Error(err)
		return
	}

	update := domain.SkillUpdate{
		Name:             req.Name,
		Category:         req.Category,
		Description:      req.Description,
		Icon:             req.Icon,
		URL:              req.URL,
		Tags:             req.Tags,
		IsPublic:         req.IsPublic,
		ProficiencyLevel: req.ProficiencyLevel,
		Detail:           req.Detail,
	}
	if req.Certification != nil {
		update.Certification = &domain.CertificationUpdate{
			Issuer:          req.Certification.Issuer,
			Level:           req.Certification.Level,
			DateObtained:    req.Certification.DateObtained,
			ExpiryDate:      req.Certification.ExpiryDate,
			CertificationID: req.Certification.CertificationID,
		}
	}

	skill, err := h.skillUC.Update(c.Request.Context(), middleware.CurrentUser(c), id, update, pdf)
	if err != nil {
		if pdf != nil {
			upload.Cleanup(pdf.Path)
		}
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill updated", skill)
}

func (h *SkillHandler) Delete(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.skillUC.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill deleted", nil)
}

func (h *SkillHandler) ListPublic(c *gin.Context) {
	userID, err := objectIDParam(c, "userId")
	if err != nil {
		c.Error(err)
		return
	}
	skills, err := h.skillUC.ListPublic(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Public skills", gin.H{
		"skills": skills,
		"count":  len(skills),
	})
}

func (h *SkillHandler) Endorse(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	count, err := h.skillUC.Endorse(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Skill endorsed", gin.H{"endorsementCount": count})
}

func (h *SkillHandler) RemoveEndorsement(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	count, err := h.skillUC.RemoveEndorsement(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Endorsement removed", gin.H{"endorsementCount": count})
}

func (h *SkillHandler) Stats(c *gin.Context) {
	stats, err := h.skillUC.Stats(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill stats", stats)
}
