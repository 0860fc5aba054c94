package email

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_Builtins(t *testing.T) {
	tm := NewTemplateManager()

	assert.Equal(t, []string{TemplateBanNotice, TemplateReportResolved, TemplateVerificationCode}, tm.TemplateNames())

	out, err := tm.Render(TemplateVerificationCode, TemplateData{"Username": "ana", "Code": "0427", "ExpiresMinutes": 15})
	require.NoError(t, err)
	assert.Contains(t, out, "0427")
	assert.Contains(t, out, "15 minutos")
}

func TestTemplateManager_EscapesData(t *testing.T) {
	tm := NewTemplateManager()

	out, err := tm.Render(TemplateBanNotice, TemplateData{"Username": "x", "Reason": "<script>"})
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestTemplateManager_UnknownTemplate(t *testing.T) {
	_, err := NewTemplateManager().Render("missing", nil)
	assert.Error(t, err)
}

func TestTemplateManager_LoadTemplatesOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ban_notice.html"), []byte("custom {{.Reason}}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	tm := NewTemplateManager()
	require.NoError(t, tm.LoadTemplates(dir))

	out, err := tm.Render(TemplateBanNotice, TemplateData{"Reason": "spam"})
	require.NoError(t, err)
	assert.Equal(t, "custom spam", out)
	assert.Len(t, tm.TemplateNames(), 3)
}

func TestLogProvider_SendTemplateLogsCode(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogProvider(DefaultConfig(), NewTemplateManager()).
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	err := p.SendTemplate([]string{"v@example.com"}, "Código", TemplateVerificationCode,
		TemplateData{"Username": "v", "Code": "1234", "ExpiresMinutes": 15})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "code=1234")
	assert.Contains(t, buf.String(), "to=v@example.com")
}

func TestLogProvider_NoRecipients(t *testing.T) {
	p := NewLogProvider(DefaultConfig(), nil)
	assert.Error(t, p.Send(&Email{Subject: "x"}))
}

func TestSMTPProvider_Validate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, NewSMTPProvider(cfg, nil).Validate())

	cfg.Host = ""
	assert.Error(t, NewSMTPProvider(cfg, nil).Validate())

	cfg = DefaultConfig()
	cfg.Port = 70000
	assert.Error(t, NewSMTPProvider(cfg, nil).Validate())
}

func TestSMTPProvider_SendTemplateWithoutRenderer(t *testing.T) {
	p := NewSMTPProvider(DefaultConfig(), nil)
	err := p.SendTemplate([]string{"a@b.c"}, "s", TemplateBanNotice, nil)
	assert.ErrorContains(t, err, "renderer")
}

func TestNewProvider_Mode(t *testing.T) {
	_, isSMTP := NewProvider(DefaultConfig(), ModeSMTP, nil).(*SMTPProvider)
	assert.True(t, isSMTP)

	_, isLog := NewProvider(DefaultConfig(), "log", nil).(*LogProvider)
	assert.True(t, isLog)
}
