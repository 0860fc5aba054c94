package email

import (
	"fmt"
	"log/slog"
	"strings"

	"mural_backend/internal/logger"
)

// LogProvider не отправляет письма, а пишет их в лог. Используется в dev и на хостингах без SMTP.
type LogProvider struct {
	config   *SMTPConfig
	renderer TemplateRenderer
	log      *slog.Logger
}

func NewLogProvider(config *SMTPConfig, renderer TemplateRenderer) *LogProvider {
	return &LogProvider{config: config, renderer: renderer}
}

// WithLogger подменяет логгер (для тестов).
func (p *LogProvider) WithLogger(l *slog.Logger) *LogProvider {
	p.log = l
	return p
}

func (p *LogProvider) logger() *slog.Logger {
	if p.log != nil {
		return p.log
	}
	return logger.GetLogger()
}

func (p *LogProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	from := email.From
	if from == "" {
		from = p.config.FromEmail
	}

	body := email.Body
	if body == "" {
		body = email.HTMLBody
	}

	p.logger().Info("email (log mode)",
		slog.String("from", from),
		slog.String("to", strings.Join(email.To, ",")),
		slog.String("subject", email.Subject),
		slog.String("body", body),
		slog.String("template", email.Template),
	)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	msg, err := renderMessage(p.renderer, to, subject, templateName, data)
	if err != nil {
		return err
	}

	// код верификации дублируется отдельным полем, чтобы его было легко найти в логах
	if code, ok := data["Code"]; ok {
		p.logger().Info("verification code", slog.String("to", strings.Join(to, ",")), slog.Any("code", code))
	}
	return p.Send(msg)
}

func (p *LogProvider) Validate() error { return nil }

func (p *LogProvider) Close() error { return nil }
