package v1

import (
	"net/http"

	"go-skillmarket-backend/internal/delivery/http/middleware"
	"go-skillmarket-backend/internal/delivery/http/response"
	"go-skillmarket-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ExamHandler struct {
	examUC domain.ExamUsecase
}

func NewExamHandler(public *gin.RouterGroup, protected *gin.RouterGroup, examUC domain.ExamUsecase) {
	handler := &ExamHandler{examUC: examUC}

	publicExams := public.Group("/exams")
	{
		publicExams.GET("", handler.List)
		publicExams.GET("/:id", handler.GetDetails)
		publicExams.GET("/code/:code", handler.GetByCode)
		publicExams.GET("/categories/list", handler.Catalog)
		publicExams.GET("/stats/overview", handler.Stats)
	}

	exams := protected.Group("/exams")
	{
		exams.POST("", handler.Create)
		exams.PUT("/:id", handler.Update)
		exams.DELETE("/:id", handler.Delete)
		exams.POST("/:id/reviews", handler.AddReview)
		exams.PUT("/:id/reviews/:reviewId", handler.UpdateReview)
		exams.DELETE("/:id/reviews/:reviewId", handler.DeleteReview)
	}
}

type CreateExamRequest struct {
	Name           string              `json:"name" binding:"required,min=3,max=200"`
	Code           string              `json:"code" binding:"required,min=2,max=20"`
	Category       string              `json:"category" binding:"required"`
	Subcategory    string              `json:"subcategory"`
	Provider       domain.Provider     `json:"provider" binding:"required"`
	Description    string              `json:"description" binding:"required,min=10,max=5000"`
	Level          string              `json:"level" binding:"required,oneof=Foundation Associate Professional Expert Specialty"`
	Duration       int                 `json:"duration" binding:"required,gte=15,lte=480"`
	Format         string              `json:"format"`
	PassingScore   *int                `json:"passingScore" binding:"required,gte=0,lte=100"`
	TotalQuestions int                 `json:"totalQuestions" binding:"omitempty,gte=1"`
	Cost           domain.ExamCost     `json:"cost"`
	Schedule       domain.ExamSchedule `json:"schedule"`
	Difficulty     string              `json:"difficulty"`
	Tags           []string            `json:"tags"`
	IsFeatured     bool                `json:"isFeatured"`
	Status         string              `json:"status" binding:"omitempty,oneof=Active Discontinued 'Coming Soon' Beta"`
}

type UpdateExamRequest struct {
	Name           *string              `json:"name" binding:"omitempty,min=3,max=200"`
	Category       *string              `json:"category"`
	Subcategory    *string              `json:"subcategory"`
	Description    *string              `json:"description" binding:"omitempty,min=10,max=5000"`
	Level          *string              `json:"level" binding:"omitempty,oneof=Foundation Associate Professional Expert Specialty"`
	Duration       *int                 `json:"duration" binding:"omitempty,gte=15,lte=480"`
	Format         *string              `json:"format"`
	PassingScore   *int                 `json:"passingScore" binding:"omitempty,gte=0,lte=100"`
	TotalQuestions *int                 `json:"totalQuestions" binding:"omitempty,gte=1"`
	Cost           *domain.ExamCost     `json:"cost"`
	Schedule       *domain.ExamSchedule `json:"schedule"`
	Difficulty     *string              `json:"difficulty"`
	Tags           *[]string            `json:"tags"`
	IsFeatured     *bool                `json:"isFeatured"`
	Status         *string              `json:"status" binding:"omitempty,oneof=Active Discontinued 'Coming Soon' Beta"`
}

type ReviewRequest struct {
	Rating  int     `json:"rating" binding:"required,gte=1,lte=5"`
	Comment *string `json:"comment" binding:"omitempty,max=500"`
}

func (h *ExamHandler) List(c *gin.Context) {
	filter := domain.ExamFilter{
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Level:       c.Query("level"),
		Provider:    c.Query("provider"),
		Difficulty:  c.Query("difficulty"),
		Featured:    c.Query("featured"),
	}
	exams, pagination, err := h.examUC.List(c.Request.Context(), filter, pageQuery(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Exams", gin.H{
		"exams":      exams,
		"pagination": pagination,
	})
}

func (h *ExamHandler) GetDetails(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	exam, err := h.examUC.GetDetails(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Exam details", exam)
}

func (h *ExamHandler) GetByCode(c *gin.Context) {
	exam, err := h.examUC.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Exam details", exam)
}

func (h *ExamHandler) Create(c *gin.Context) {
	var req CreateExamRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	schedule := req.Schedule
	if schedule.Availability == "" {
		schedule.Availability = "On-demand"
	}
	exam := &domain.Exam{
		Name:           req.Name,
		Code:           req.Code,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		Provider:       req.Provider,
		Description:    req.Description,
		Level:          req.Level,
		Duration:       req.Duration,
		Format:         req.Format,
		PassingScore:   *req.PassingScore,
		TotalQuestions: req.TotalQuestions,
		Cost:           req.Cost,
		Schedule:       schedule,
		Difficulty:     req.Difficulty,
		Tags:           req.Tags,
		IsFeatured:     req.IsFeatured,
		Status:         req.Status,
	}
	if err := h.examUC.Create(c.Request.Context(), middleware.CurrentUser(c), exam); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Exam created", exam)
}

func (h *ExamHandler) Update(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req UpdateExamRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	update := domain.ExamUpdate{
		Name:           req.Name,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		Description:    req.Description,
		Level:          req.Level,
		Duration:       req.Duration,
		Format:         req.Format,
		PassingScore:   req.PassingScore,
		TotalQuestions: req.TotalQuestions,
		Cost:           req.Cost,
		Schedule:       req.Schedule,
		Difficulty:     req.Difficulty,
		Tags:           req.Tags,
		IsFeatured:     req.IsFeatured,
		Status:         req.Status,
	}
	exam, err := h.examUC.Update(c.Request.Context(), middleware.CurrentUser(c), id, update)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Exam updated", exam)
}

func (h *ExamHandler) Delete(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.examUC.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Exam deleted", nil)
}

func (h *ExamHandler) AddReview(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req ReviewRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	comment := ""
	if req.Comment != nil {
		comment = *req.Comment
	}
	exam, err := h.examUC.AddReview(c.Request.Context(), middleware.CurrentUser(c), id, req.Rating, comment)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Review added", gin.H{
		"averageRating": exam.AverageRating,
		"reviewCount":   exam.ReviewCount,
	})
}

func (h *ExamHandler) UpdateReview(c *gin.Context) {
	examID, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	reviewID, err := objectIDParam(c, "reviewId")
	if err != nil {
		c.Error(err)
		return
	}
	var req ReviewRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	comment := ""
	if req.Comment != nil {
		comment = *req.Comment
	}
	review, err := h.examUC.UpdateReview(c.Request.Context(), middleware.CurrentUser(c), examID, reviewID, req.Rating, comment, req.Comment != nil)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Review updated", review)
}

func (h *ExamHandler) DeleteReview(c *gin.Context) {
	examID, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	reviewID, err := objectIDParam(c, "reviewId")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.examUC.DeleteReview(c.Request.Context(), middleware.CurrentUser(c), examID, reviewID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Review deleted", nil)
}

func (h *ExamHandler) Catalog(c *gin.Context) {
	catalog, err := h.examUC.Catalog(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Exam catalog", catalog)
}

func (h *ExamHandler) Stats(c *gin.Context) {
	stats, err := h.examUC.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Exam stats", stats)
}
