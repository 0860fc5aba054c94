package integration_test

import (
	"net/http"
	"testing"

	"mural_backend/internal/models"
	"mural_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportPage struct {
	Data []struct {
		ID         string `json:"id"`
		TargetType string `json:"tipo_conteudo"`
		TargetID   string `json:"conteudo_id"`
		Resolved   bool   `json:"resolvido"`
	} `json:"dados"`
}

func newAdmin(t *testing.T, ts *helpers.TestServer, level models.AdminLevel) (*models.User, string) {
	t.Helper()
	user := helpers.CreateVisitor(t, ts.DB, true)
	helpers.MakeAdmin(t, ts.DB, user, level)
	return user, ts.TokenFor(t, user)
}

func TestAdmin_ReportsRequireModerator(t *testing.T) {
	ts := helpers.NewTestServer(t)
	student := helpers.CreateStudent(t, ts.DB)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/admin/denuncias", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/admin/denuncias", ts.TokenFor(t, student), nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	_, modToken := newAdmin(t, ts, models.AdminLevelModerator)
	res, body = ts.SendRequest(t, http.MethodGet, "/api/admin/denuncias", modToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestAdmin_ResolveReportRemovesPost(t *testing.T) {
	ts := helpers.NewTestServer(t)
	author := helpers.CreateStudent(t, ts.DB)
	post := helpers.CreatePost(t, ts.DB, author, "Aviso com conteúdo impróprio")
	reporter := ts.TokenFor(t, helpers.CreateVisitor(t, ts.DB, true))
	_, modToken := newAdmin(t, ts, models.AdminLevelModerator)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/postagens/"+post.ID+"/denunciar", reporter, map[string]string{"motivo": "spam"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/admin/denuncias?resolvido=false", modToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var page reportPage
	helpers.DecodeJSON(t, body, &page)
	require.Len(t, page.Data, 1)
	assert.Equal(t, post.ID, page.Data[0].TargetID)
	assert.Equal(t, "postagem", page.Data[0].TargetType)

	reportID := page.Data[0].ID
	res, body = ts.SendRequest(t, http.MethodPost, "/api/admin/denuncias/"+reportID+"/resolver", modToken, map[string]string{"acao": "explodir"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/admin/denuncias/"+reportID+"/resolver", modToken, map[string]string{"acao": "remover"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"resolvido":true`)
	assert.Contains(t, body, `"acao_tomada":"remover"`)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/postagens/"+post.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/admin/denuncias/"+reportID+"/resolver", modToken, map[string]string{"acao": "ignorar"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestAdmin_BanAndUnban(t *testing.T) {
	ts := helpers.NewTestServer(t)
	target := helpers.CreateStudent(t, ts.DB)
	targetToken := ts.TokenFor(t, target)
	_, modToken := newAdmin(t, ts, models.AdminLevelModerator)
	_, adminToken := newAdmin(t, ts, models.AdminLevelAdmin)
	ban := map[string]string{"motivo": "spam repetido"}

	// модератору баны недоступны
	res, body := ts.SendRequest(t, http.MethodPost, "/api/admin/usuarios/"+target.ID+"/banir", modToken, ban)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/admin/usuarios/"+target.ID+"/banir", adminToken, ban)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/auth/me", targetToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "USER_BANNED", helpers.ErrorCode(t, body))

	res, body = ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"identificador": target.Username,
		"senha":         helpers.DefaultPassword,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "USER_BANNED", helpers.ErrorCode(t, body))

	res, body = ts.SendRequest(t, http.MethodPost, "/api/admin/usuarios/"+target.ID+"/desbanir", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/auth/me", targetToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestAdmin_CannotBanAdmin(t *testing.T) {
	ts := helpers.NewTestServer(t)
	other, _ := newAdmin(t, ts, models.AdminLevelModerator)
	self, adminToken := newAdmin(t, ts, models.AdminLevelSuperAdmin)
	ban := map[string]string{"motivo": "teste de guarda"}

	res, body := ts.SendRequest(t, http.MethodPost, "/api/admin/usuarios/"+other.ID+"/banir", adminToken, ban)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/admin/usuarios/"+self.ID+"/banir", adminToken, ban)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)
}
