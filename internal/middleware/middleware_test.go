package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mural_backend/internal/auth"
	"mural_backend/internal/middleware"
	"mural_backend/internal/models"
	"mural_backend/internal/ratelimit"
	"mural_backend/internal/repositories"
	"mural_backend/internal/services"
	"mural_backend/test/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const secret = "middleware-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newRouter(db *gorm.DB, mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.DBMiddleware(db))
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  middleware.GetUserID(c),
			"type":     middleware.GetUserType(c),
			"is_admin": middleware.IsAdmin(c),
		})
	})
	return r
}

func token(t *testing.T, u *models.User) string {
	t.Helper()
	tok, err := auth.GenerateToken(u.ID, u.UserType, secret, time.Hour)
	require.NoError(t, err)
	return tok
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, body io.Reader) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.NewDecoder(body).Decode(&e))
	return e
}

func TestAuthMiddleware(t *testing.T) {
	db := helpers.NewTestDB(t)
	users := repositories.NewUserRepository()
	student := helpers.CreateStudent(t, db)
	banned := helpers.CreateStudent(t, db)
	reason := "spam"
	require.NoError(t, users.SetBanned(db, banned.ID, true, &reason))

	r := newRouter(db, middleware.AuthMiddleware(secret, users))

	t.Run("missing token", func(t *testing.T) {
		w := do(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, student))
		w := do(r, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), student.ID)
		assert.Contains(t, w.Body.String(), `"type":"estudante"`)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token(t, student)})
		w := do(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("foreign signature", func(t *testing.T) {
		tok, err := auth.GenerateToken(student.ID, student.UserType, "other", time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := do(r, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_TOKEN", decodeError(t, w.Body).Error.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		ghost := &models.User{BaseModel: models.BaseModel{ID: "ghost"}, UserType: models.UserTypeVisitor}
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, ghost))
		w := do(r, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("banned user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, banned))
		w := do(r, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, decodeError(t, w.Body).Error.Message, "spam")
	})
}

func TestOptionalAuth(t *testing.T) {
	db := helpers.NewTestDB(t)
	visitor := helpers.CreateVisitor(t, db, true)
	r := newRouter(db, middleware.OptionalAuth(secret, repositories.NewUserRepository()))

	w := do(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":""`)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, visitor))
	w = do(r, req)
	assert.Contains(t, w.Body.String(), visitor.ID)
}

func TestStudentOnly(t *testing.T) {
	db := helpers.NewTestDB(t)
	users := repositories.NewUserRepository()
	r := newRouter(db, middleware.AuthMiddleware(secret, users), middleware.StudentOnly())

	visitor := helpers.CreateVisitor(t, db, true)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, visitor))
	w := do(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Apenas estudantes podem realizar esta ação", decodeError(t, w.Body).Error.Message)

	student := helpers.CreateStudent(t, db)
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, student))
	assert.Equal(t, http.StatusOK, do(r, req).Code)
}

func TestAdminOnly(t *testing.T) {
	db := helpers.NewTestDB(t)
	repos := services.NewRepositories()
	admins := services.NewAdminService(repos.Users, repos.Sessions, repos.Posts, repos.Comments, repos.Reports, nil)
	r := newRouter(db, middleware.AuthMiddleware(secret, repos.Users), middleware.AdminOnly(admins, models.AdminLevelAdmin))

	plain := helpers.CreateStudent(t, db)
	moderator := helpers.CreateStudent(t, db)
	helpers.MakeAdmin(t, db, moderator, models.AdminLevelModerator)
	superAdmin := helpers.CreateStudent(t, db)
	helpers.MakeAdmin(t, db, superAdmin, models.AdminLevelSuperAdmin)

	tests := []struct {
		name   string
		user   *models.User
		status int
	}{
		{"not an admin", plain, http.StatusForbidden},
		{"moderator below admin", moderator, http.StatusForbidden},
		{"super admin", superAdmin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Authorization", "Bearer "+token(t, tt.user))
			w := do(r, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"is_admin":true`)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	db := helpers.NewTestDB(t)
	limiter := ratelimit.NewMemoryLimiter()
	r := newRouter(db, middleware.RateLimit(limiter, ratelimit.ScopeLogin, 2, time.Minute, middleware.ByIP))

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = ip + ":1234"
		return do(r, req)
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

	w := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "RATE_LIMITED", decodeError(t, w.Body).Error.Code)

	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code)
}

func TestRequestID(t *testing.T) {
	db := helpers.NewTestDB(t)
	r := newRouter(db)

	w := do(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = do(r, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(middleware.BodyLimit(10))
	r.POST("/upload", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if middleware.IsBodyTooLarge(err) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := do(r, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)

	big := strings.Repeat("x", 10+(1<<20)+1)
	w = do(r, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(big)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_TOO_LARGE")
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := do(r, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = do(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
