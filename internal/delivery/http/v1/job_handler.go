package v1

import (
	"net/http"
	"time"

	"go-skillmarket-backend/internal/delivery/http/middleware"
	"go-skillmarket-backend/internal/delivery/http/response"
	"go-skillmarket-backend/internal/domain"
	"go-skillmarket-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(optional *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// Browsing works anonymously; an attached identity turns reads into
	// view counts.
	browse := optional.Group("/jobs")
	{
		browse.GET("", handler.List)
		browse.GET("/:id", handler.GetDetails)
	}

	jobs := protected.Group("/jobs")
	{
		jobs.POST("", handler.Create)
		jobs.PUT("/:id", handler.Update)
		jobs.DELETE("/:id", handler.Delete)
		jobs.POST("/:id/apply", handler.Apply)
		jobs.GET("/:id/applications", handler.ListApplications)
		jobs.PUT("/:id/applications/:appId", handler.UpdateApplication)
		jobs.GET("/stats/overview", handler.Stats)
	}
}

type CreateJobRequest struct {
	Title        string                 `json:"title" binding:"required,min=3,max=100"`
	Company      domain.Company         `json:"company" binding:"required"`
	Location     domain.JobLocation     `json:"location" binding:"required"`
	JobType      string                 `json:"jobType" binding:"required,oneof=Full-time Part-time Contract Internship Freelance"`
	Experience   domain.ExperienceRange `json:"experience"`
	Salary       domain.SalaryRange     `json:"salary"`
	Description  string                 `json:"description" binding:"required,min=10,max=5000"`
	Requirements domain.Requirements    `json:"requirements"`
	Deadline     *time.Time             `json:"deadline"`
	Tags         []string               `json:"tags"`
	IsFeatured   bool                   `json:"isFeatured"`
	IsUrgent     bool                   `json:"isUrgent"`
	Platform     string                 `json:"platform"`
	ExternalURL  string                 `json:"externalUrl" binding:"omitempty,url"`
	Status       string                 `json:"status" binding:"omitempty,oneof=Active Closed Draft Archived"`
}

type UpdateJobRequest struct {
	Title        *string                 `json:"title" binding:"omitempty,min=3,max=100"`
	Company      *domain.Company         `json:"company"`
	Location     *domain.JobLocation     `json:"location"`
	JobType      *string                 `json:"jobType" binding:"omitempty,oneof=Full-time Part-time Contract Internship Freelance"`
	Experience   *domain.ExperienceRange `json:"experience"`
	Salary       *domain.SalaryRange     `json:"salary"`
	Description  *string                 `json:"description" binding:"omitempty,min=10,max=5000"`
	Requirements *domain.Requirements    `json:"requirements"`
	Deadline     *time.Time              `json:"deadline"`
	Tags         *[]string               `json:"tags"`
	IsFeatured   *bool                   `json:"isFeatured"`
	IsUrgent     *bool                   `json:"isUrgent"`
	Platform     *string                 `json:"platform"`
	ExternalURL  *string                 `json:"externalUrl" binding:"omitempty,url"`
	Status       *string                 `json:"status" binding:"omitempty,oneof=Active Closed Draft Archived"`
}

type ApplyRequest struct {
	Resume      string `json:"resume" binding:"omitempty,url"`
	CoverLetter string `json:"coverLetter" binding:"omitempty,max=2000"`
	Portfolio   string `json:"portfolio" binding:"omitempty,url"`
}

type UpdateApplicationRequest struct {
	Status string  `json:"status" binding:"required,oneof='Applied' 'Under Review' 'Shortlisted' 'Interview' 'Rejected' 'Hired'"`
	Notes  *string `json:"notes" binding:"omitempty,max=1000"`
}

func (h *JobHandler) List(c *gin.Context) {
	filter := domain.JobFilter{
		Search:     c.Query("search"),
		Location:   c.Query("location"),
		JobType:    c.Query("jobType"),
		Experience: c.Query("experience"),
		Category:   c.Query("category"),
		Platform:   c.Query("platform"),
		Featured:   c.Query("featured"),
		Urgent:     c.Query("urgent"),
	}
	jobs, pagination, err := h.jobUC.List(c.Request.Context(), filter, pageQuery(c), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs", gin.H{
		"jobs":       jobs,
		"pagination": pagination,
	})
}

func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	job, err := h.jobUC.GetDetails(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job details", job)
}

func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if req.Company.Name == "" {
		c.Error(apperror.BadRequest("Company name is required"))
		return
	}
	if req.Location.Type == "" {
		c.Error(apperror.BadRequest("Location type is required"))
		return
	}

	job := &domain.Job{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		JobType:      req.JobType,
		Experience:   req.Experience,
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: req.Requirements,
		Process:      domain.ApplicationProcess{Deadline: req.Deadline},
		Tags:         req.Tags,
		IsFeatured:   req.IsFeatured,
		IsUrgent:     req.IsUrgent,
		Platform:     req.Platform,
		ExternalURL:  req.ExternalURL,
		Status:       req.Status,
	}
	if err := h.jobUC.Create(c.Request.Context(), middleware.CurrentUser(c), job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

func (h *JobHandler) Update(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req UpdateJobRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	update := domain.JobUpdate{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		JobType:      req.JobType,
		Experience:   req.Experience,
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: req.Requirements,
		Deadline:     req.Deadline,
		Tags:         req.Tags,
		IsFeatured:   req.IsFeatured,
		IsUrgent:     req.IsUrgent,
		Platform:     req.Platform,
		ExternalURL:  req.ExternalURL,
		Status:       req.Status,
	}
	job, err := h.jobUC.Update(c.Request.Context(), middleware.CurrentUser(c), id, update)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.jobUC.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

func (h *JobHandler) Apply(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req ApplyRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	app := domain.Application{
		Resume:      req.Resume,
		CoverLetter: req.CoverLetter,
		Portfolio:   req.Portfolio,
	}
	if err := h.jobUC.Apply(c.Request.Context(), middleware.CurrentUser(c), id, app); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", nil)
}

func (h *JobHandler) ListApplications(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	apps, err := h.jobUC.ListApplications(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications", gin.H{
		"applications": apps,
		"count":        len(apps),
	})
}

func (h *JobHandler) UpdateApplication(c *gin.Context) {
	jobID, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	appID, err := objectIDParam(c, "appId")
	if err != nil {
		c.Error(err)
		return
	}
	var req UpdateApplicationRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	notes := ""
	if req.Notes != nil {
		notes = *req.Notes
	}
	app, err := h.jobUC.UpdateApplication(c.Request.Context(), middleware.CurrentUser(c), jobID, appID, req.Status, notes, req.Notes != nil)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application updated", app)
}

func (h *JobHandler) Stats(c *gin.Context) {
	stats, err := h.jobUC.Stats(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job stats", stats)
}
