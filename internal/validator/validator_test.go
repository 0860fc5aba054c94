package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Username string `json:"nome_usuario" validate:"required,username"`
	Password string `json:"senha" validate:"required,strongpassword"`
	BP       string `json:"bp" validate:"omitempty,bp"`
	Code     string `json:"codigo" validate:"omitempty,code4"`
}

type filters struct {
	MediaType string `form:"tipo" validate:"mediacategory"`
	Target    string `form:"alvo" validate:"contenttype"`
	Action    string `form:"acao" validate:"reportaction"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(&signup{Username: "maria_souza", Password: "Senha123", BP: "sp3012345x", Code: "0427"}))
	assert.NoError(t, v.Validate(&filters{MediaType: "IMAGEM", Target: "postagem", Action: "ocultar"}))
	assert.NoError(t, v.Validate(&filters{}))
}

func TestValidate_FieldMessages(t *testing.T) {
	v := New()
	err := v.Validate(&signup{Username: "_x", Password: "fraca", BP: "123", Code: "12a4"})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Nome de usuário deve ter 3-50 caracteres, apenas letras, números, _ e -", verr.Errors["nome_usuario"])
	assert.Contains(t, verr.Errors["senha"], "8 caracteres")
	assert.Equal(t, "Formato de BP inválido", verr.Errors["bp"])
	assert.Equal(t, "Código deve ter 4 dígitos", verr.Errors["codigo"])
	assert.Contains(t, err.Error(), "field 'bp'")
}

func TestValidate_FormTagNames(t *testing.T) {
	err := New().Validate(&filters{MediaType: "planilha", Target: "usuario", Action: "apagar"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 3)
	assert.Equal(t, "Tipo de mídia inválido", verr.Errors["tipo"])
	assert.Equal(t, "Tipo de conteúdo inválido", verr.Errors["alvo"])
	assert.Equal(t, "Ação inválida", verr.Errors["acao"])
}

func TestWithBPPattern(t *testing.T) {
	v := New(WithBPPattern(`^[0-9]{5}$`))
	assert.True(t, v.MatchBP("12345"))
	assert.False(t, v.MatchBP("SP3012345X"))

	assert.True(t, New().MatchBP(" sp3012345x "))
}
