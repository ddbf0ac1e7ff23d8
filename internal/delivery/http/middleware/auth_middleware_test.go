package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"go-skillmarket-backend/internal/delivery/http/middleware"
	"go-skillmarket-backend/internal/domain"
	"go-skillmarket-backend/pkg/apperror"
	"go-skillmarket-backend/pkg/auth"
	"go-skillmarket-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init()
	os.Exit(m.Run())
}

// stubAuthUsecase resolves every subject to a fixed account, or fails
// when none is configured.
type stubAuthUsecase struct {
	user *domain.User
}

func (s *stubAuthUsecase) Register(ctx context.Context, user *domain.User, plainPassword string) (string, error) {
	return "", nil
}

func (s *stubAuthUsecase) Login(ctx context.Context, email, plainPassword string) (string, *domain.User, error) {
	return "", nil, nil
}

func (s *stubAuthUsecase) ResolveUser(ctx context.Context, id string) (*domain.User, error) {
	if s.user == nil {
		return nil, apperror.Unauthorized("Account no longer exists")
	}
	return s.user, nil
}

func newAuthTestRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(mw)
	r.GET("/jobs", func(c *gin.Context) {
		if user := middleware.CurrentUser(c); user != nil {
			c.JSON(http.StatusOK, gin.H{"viewer": user.ID.Hex()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"viewer": "anonymous"})
	})
	return r
}

func TestOptionalAuth(t *testing.T) {
	account := &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleUser, IsActive: true}
	tokens := auth.NewManager("test-secret", time.Hour)

	t.Run("no token is served anonymously", func(t *testing.T) {
		router := newAuthTestRouter(middleware.OptionalAuth(tokens, &stubAuthUsecase{user: account}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "anonymous")
	})

	t.Run("an unverifiable token is served anonymously", func(t *testing.T) {
		router := newAuthTestRouter(middleware.OptionalAuth(tokens, &stubAuthUsecase{user: account}))
		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		req.Header.Set("Authorization", "Bearer not-a-valid-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "anonymous")
	})

	t.Run("a token for a dead account is served anonymously", func(t *testing.T) {
		router := newAuthTestRouter(middleware.OptionalAuth(tokens, &stubAuthUsecase{}))
		token, err := tokens.Issue(account.ID.Hex())
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "anonymous")
	})

	t.Run("a valid token attaches the identity", func(t *testing.T) {
		router := newAuthTestRouter(middleware.OptionalAuth(tokens, &stubAuthUsecase{user: account}))
		token, err := tokens.Issue(account.ID.Hex())
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), account.ID.Hex())
	})
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)
	router := newAuthTestRouter(middleware.AuthMiddleware(tokens, &stubAuthUsecase{}))

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		req.Header.Set("Authorization", "Bearer not-a-valid-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
