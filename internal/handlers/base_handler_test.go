package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"mural_backend/internal/logger"
	"mural_backend/internal/validator"
	"mural_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitWithWriter("test", io.Discard)
	os.Exit(m.Run())
}

type echoRequest struct {
	Text string `json:"texto" validate:"required,min=3"`
}

type errorBody struct {
	Error struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func echoRouter(h *BaseHandler) *gin.Engine {
	r := gin.New()
	r.POST("/echo", func(c *gin.Context) {
		var req echoRequest
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
		c.JSON(http.StatusOK, req)
	})
	r.POST("/optional", func(c *gin.Context) {
		var req echoRequest
		if !h.BindOptional_JSON(c, &req) {
			return
		}
		c.JSON(http.StatusOK, req)
	})
	r.GET("/me", func(c *gin.Context) {
		if _, ok := h.GetAndAuthorizeUserID(c); !ok {
			return
		}
		c.Status(http.StatusNoContent)
	})
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBindAndValidate_JSON(t *testing.T) {
	r := echoRouter(NewBaseHandler(validator.New(), 1024))

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"valid", `{"texto":"olá mundo"}`, http.StatusOK, ""},
		{"malformed", `{"texto":`, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"too short", `{"texto":"oi"}`, http.StatusBadRequest, "VALIDATION_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(r, "/echo", tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.code == "" {
				return
			}
			var body errorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}

	var body errorBody
	w := post(r, "/echo", `{"texto":"oi"}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Error.Details["texto"], "3 caracteres")
}

func TestBindOptional_JSON(t *testing.T) {
	r := echoRouter(NewBaseHandler(validator.New(), 1024))

	assert.Equal(t, http.StatusOK, post(r, "/optional", "").Code)
	assert.Equal(t, http.StatusBadRequest, post(r, "/optional", "{").Code)
}

func TestGetAndAuthorizeUserID(t *testing.T) {
	h := NewBaseHandler(validator.New(), 1024)
	r := echoRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	authed := gin.New()
	authed.Use(func(c *gin.Context) { c.Set(contextkeys.UserIDKey, "u-1") })
	authed.GET("/me", func(c *gin.Context) {
		id, ok := h.GetAndAuthorizeUserID(c)
		require.True(t, ok)
		c.String(http.StatusOK, id)
	})
	w = httptest.NewRecorder()
	authed.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, "u-1", w.Body.String())
}

func TestGetDBPanicsWithoutMiddleware(t *testing.T) {
	h := NewBaseHandler(validator.New(), 1024)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Panics(t, func() { h.GetDB(c) })
}

func TestHealth(t *testing.T) {
	r := gin.New()
	r.GET("/health", NewHealthHandler("staging").Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"mural-ifsp","environment":"staging"}`, w.Body.String())
}
