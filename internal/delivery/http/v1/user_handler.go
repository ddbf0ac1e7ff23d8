package v1

import (
	"net/http"

	"go-skillmarket-backend/internal/delivery/http/middleware"
	"go-skillmarket-backend/internal/delivery/http/response"
	"go-skillmarket-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC  domain.UserUsecase
	skillUC domain.SkillUsecase
}

func NewUserHandler(public *gin.RouterGroup, protected *gin.RouterGroup, userUC domain.UserUsecase, skillUC domain.SkillUsecase) {
	handler := &UserHandler{userUC: userUC, skillUC: skillUC}

	publicUsers := public.Group("/users")
	{
		publicUsers.GET("/search", handler.Search)
		publicUsers.GET("/:id", handler.GetPublicProfile)
		publicUsers.GET("/:id/skills", handler.ListPublicSkills)
	}

	protectedUsers := protected.Group("/users")
	{
		protectedUsers.GET("/profile", handler.GetProfile)
		protectedUsers.PUT("/profile", handler.UpdateProfile)
		protectedUsers.POST("/profile-picture", handler.SetProfilePicture)
		protectedUsers.DELETE("/profile-picture", handler.RemoveProfilePicture)
		protectedUsers.GET("/stats/overview", handler.Stats)
		protectedUsers.DELETE("/:id", handler.DeleteAccount)
	}
}

type UpdateProfileRequest struct {
	FirstName      *string                   `json:"firstName" binding:"omitempty,min=2,max=50"`
	LastName       *string                   `json:"lastName" binding:"omitempty,min=2,max=50"`
	Phone          *string                   `json:"phone"`
	Bio            *string                   `json:"bio" binding:"omitempty,max=1000"`
	ProfilePicture *string                   `json:"profilePicture" binding:"omitempty,url"`
	Location       *domain.UserLocation      `json:"location"`
	Professional   *domain.ProfessionalInfo  `json:"professionalInfo"`
	Education      *[]domain.Education       `json:"education"`
	SocialLinks    *domain.SocialLinks       `json:"socialLinks"`
	Preferences    *UpdatePreferencesRequest `json:"preferences"`
}

type UpdatePreferencesRequest struct {
	JobAlerts          *bool   `json:"jobAlerts"`
	EmailNotifications *bool   `json:"emailNotifications"`
	Privacy            *string `json:"privacy" binding:"omitempty,oneof=public private connections"`
}

type ProfilePictureRequest struct {
	URL string `json:"url" binding:"required,url"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	profile, err := h.userUC.GetProfile(c.Request.Context(), user.ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile", gin.H{
		"user":              profile,
		"profileCompletion": profile.ProfileCompletion(),
	})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	update := domain.UserUpdate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
		Location:       req.Location,
		Professional:   req.Professional,
		Education:      req.Education,
		SocialLinks:    req.SocialLinks,
	}
	if req.Preferences != nil {
		update.Preferences = &domain.PreferencesUpdate{
			JobAlerts:          req.Preferences.JobAlerts,
			EmailNotifications: req.Preferences.EmailNotifications,
			Privacy:            req.Preferences.Privacy,
		}
	}

	user := middleware.CurrentUser(c)
	updated, err := h.userUC.UpdateProfile(c.Request.Context(), user.ID, update)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", updated)
}

func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	user, err := h.userUC.GetPublicProfile(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User profile", user)
}

func (h *UserHandler) Search(c *gin.Context) {
	filter := domain.UserFilter{
		Query:      c.Query("q"),
		Location:   c.Query("location"),
		Industry:   c.Query("industry"),
		Experience: c.Query("experience"),
	}
	users, pagination, err := h.userUC.Search(c.Request.Context(), filter, pageQuery(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users found", gin.H{
		"users":      users,
		"pagination": pagination,
	})
}

func (h *UserHandler) SetProfilePicture(c *gin.Context) {
	var req ProfilePictureRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	user := middleware.CurrentUser(c)
	if err := h.userUC.SetProfilePicture(c.Request.Context(), user.ID, req.URL); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile picture updated", gin.H{"profilePicture": req.URL})
}

func (h *UserHandler) RemoveProfilePicture(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.userUC.RemoveProfilePicture(c.Request.Context(), user.ID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile picture removed", nil)
}

func (h *UserHandler) ListPublicSkills(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	// Privacy gating rides on the public profile read.
	if _, err := h.userUC.GetPublicProfile(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	skills, err := h.skillUC.ListPublic(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Public skills", gin.H{
		"skills": skills,
		"count":  len(skills),
	})
}

func (h *UserHandler) Stats(c *gin.Context) {
	user := middleware.CurrentUser(c)
	stats, err := h.userUC.GetStats(c.Request.Context(), user.ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User stats", stats)
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.userUC.DeleteAccount(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Account deleted", nil)
}
