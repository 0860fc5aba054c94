package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"mural_backend/internal/app"
	"mural_backend/internal/auth"
	"mural_backend/internal/config"
	"mural_backend/internal/media/tools"
	"mural_backend/internal/models"
	"mural_backend/internal/transcription"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const TestJWTSecret = "test_secret_key_for_integration_tests"

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	App    *app.App
	Config *config.Config
}

// NoTools - ffmpeg/ffprobe/pdftoppm "не установлены": обработка уходит в заглушки
type NoTools struct{}

func (NoTools) ProbeDuration(context.Context, string) (float64, error) {
	return 0, tools.ErrNotInstalled
}

func (NoTools) ExtractFrame(context.Context, string, float64) (image.Image, error) {
	return nil, tools.ErrNotInstalled
}

func (NoTools) RenderPDFPage(context.Context, string, int, int) (string, func(), error) {
	return "", func() {}, tools.ErrNotInstalled
}

func (NoTools) ConvertToLinear16(context.Context, string, int) ([]byte, error) {
	return nil, tools.ErrNotInstalled
}

// NewTestServer поднимает приложение на отдельной sqlite БД и временном каталоге static.
// configure может поменять конфиг до сборки приложения.
func NewTestServer(t *testing.T, configure ...func(cfg *config.Config)) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	db := NewTestDB(t)
	staticDir := t.TempDir()

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = TestJWTSecret
	cfg.Media.StaticDir = staticDir
	cfg.Upload.Root = filepath.Join(staticDir, "uploads")
	cfg.Security.IFSPEmailDomain = "@aluno.ifsp.edu.br"
	cfg.CORS.Origins = []string{"*"}
	for _, fn := range configure {
		fn(cfg)
	}
	cfg.ApplyDefaults()

	a, err := app.New(cfg, db,
		app.WithTools(NoTools{}),
		app.WithTranscriber(transcription.NewAdapter(transcription.NoopEngine{}, "pt")),
	)
	require.NoError(t, err, "не удалось собрать приложение")

	ctx, cancel := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		_ = a.Hub.Run(ctx)
		close(hubDone)
	}()

	server := httptest.NewServer(a.Router)
	t.Cleanup(func() {
		server.Close()
		cancel()
		<-hubDone
		a.Close()
	})

	return &TestServer{
		Server: server,
		DB:     db,
		App:    a,
		Config: cfg,
	}
}

// TokenFor выпускает JWT без логина (логин ограничен rate limit)
func (ts *TestServer) TokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := auth.GenerateToken(user.ID, user.UserType, ts.Config.JWT.Secret, ts.Config.JWTTTL())
	require.NoError(t, err)
	return token
}

func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "ошибка кодирования JSON для запроса")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err, "ошибка создания HTTP-запроса")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.Do(t, req, token)
}

// SendMultipart отправляет multipart/form-data (создание постов)
func (ts *TestServer) SendMultipart(t *testing.T, path, token string, fields map[string]string, file *UploadFile) (*http.Response, string) {
	t.Helper()

	body, contentType := MultipartBody(t, fields, file)
	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	return ts.Do(t, req, token)
}

func (ts *TestServer) Do(t *testing.T, req *http.Request, token string) (*http.Response, string) {
	t.Helper()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "ошибка отправки HTTP-запроса")
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	require.NoError(t, err, "ошибка чтения тела ответа")
	return res, string(resBodyBytes)
}

// DecodeJSON разбирает тело ответа в out
func DecodeJSON(t *testing.T, body string, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out), "body: %s", body)
}

// ErrorCode достает error.code из тела ошибки
func ErrorCode(t *testing.T, body string) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	DecodeJSON(t, body, &env)
	return env.Error.Code
}
