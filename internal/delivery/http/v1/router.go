package v1

import (
	"net/http"

	"go-skillmarket-backend/config"
	"go-skillmarket-backend/internal/delivery/http/middleware"
	"go-skillmarket-backend/internal/delivery/http/response"
	"go-skillmarket-backend/internal/domain"
	"go-skillmarket-backend/pkg/auth"
	"go-skillmarket-backend/pkg/upload"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	AuthUC  domain.AuthUsecase
	UserUC  domain.UserUsecase
	JobUC   domain.JobUsecase
	ExamUC  domain.ExamUsecase
	SkillUC domain.SkillUsecase
	Tokens  *auth.Manager
	Saver   *upload.Saver
	Config  *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middlewares; CORS must run before anything that can abort.
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Browsing endpoints attach an identity when a token is supplied but
	// never require one.
	optional := v1.Group("")
	optional.Use(middleware.OptionalAuth(deps.Tokens, deps.AuthUC))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	{
		NewAuthHandler(v1, protected, deps.AuthUC)
		NewUserHandler(v1, protected, deps.UserUC, deps.SkillUC)
		NewJobHandler(optional, protected, deps.JobUC)
		NewExamHandler(v1, protected, deps.ExamUC)
		NewSkillHandler(v1, protected, deps.SkillUC, deps.Saver)
	}

	return r
}
