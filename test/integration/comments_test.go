package integration_test

import (
	"net/http"
	"strings"
	"testing"

	"mural_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentResponse struct {
	ID     string `json:"id"`
	PostID string `json:"postagem_id"`
	Text   string `json:"texto"`
	Author struct {
		ID string `json:"id"`
	} `json:"autor"`
}

func TestComments_Lifecycle(t *testing.T) {
	ts := helpers.NewTestServer(t)
	student := helpers.CreateStudent(t, ts.DB)
	visitor := helpers.CreateVisitor(t, ts.DB, true)
	post := helpers.CreatePost(t, ts.DB, student, "Aviso aberto a comentários")
	visitorToken := ts.TokenFor(t, visitor)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/comentarios/postagem/"+post.ID, visitorToken, map[string]string{"texto": "  Ótima iniciativa!  "})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var comment commentResponse
	helpers.DecodeJSON(t, body, &comment)
	assert.Equal(t, "Ótima iniciativa!", comment.Text)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, visitor.ID, comment.Author.ID)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/comentarios/postagem/"+post.ID+"/contar", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"total_comentarios":1`)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/comentarios/postagem/"+post.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, comment.ID)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/comentarios/"+comment.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// редактировать может только автор
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/comentarios/"+comment.ID, ts.TokenFor(t, student), map[string]string{"texto": "Edição alheia"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPut, "/api/comentarios/"+comment.ID, visitorToken, map[string]string{"texto": "Ótima iniciativa, parabéns!"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "parabéns")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/comentarios/usuario/"+visitor.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, comment.ID)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/comentarios/"+comment.ID, visitorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/comentarios/"+comment.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/comentarios/postagem/"+post.ID+"/contar", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"total_comentarios":0`)
}

func TestComments_Validation(t *testing.T) {
	ts := helpers.NewTestServer(t)
	student := helpers.CreateStudent(t, ts.DB)
	post := helpers.CreatePost(t, ts.DB, student, "Aviso para validar comentários")
	token := ts.TokenFor(t, student)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/comentarios/postagem/"+post.ID, "", map[string]string{"texto": "Sem login"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/comentarios/postagem/"+post.ID, token, map[string]string{"texto": "   "})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/comentarios/postagem/"+post.ID, token, map[string]string{"texto": strings.Repeat("a", 1001)})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/comentarios/postagem/nao-existe", token, map[string]string{"texto": "Post inexistente"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode, body)
}

func TestComments_Report(t *testing.T) {
	ts := helpers.NewTestServer(t)
	student := helpers.CreateStudent(t, ts.DB)
	post := helpers.CreatePost(t, ts.DB, student, "Aviso com comentário ruim")
	comment := helpers.CreateComment(t, ts.DB, post, student, "Comentário ofensivo")
	reporter := ts.TokenFor(t, helpers.CreateVisitor(t, ts.DB, true))

	res, body := ts.SendRequest(t, http.MethodPost, "/api/comentarios/"+comment.ID+"/denunciar", reporter, map[string]string{"motivo": "ofensivo"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/comentarios/"+comment.ID+"/denunciar", reporter, map[string]string{"motivo": "ofensivo"})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
}
