package email

import "mural_backend/internal/config"

// SMTPConfig содержит конфигурацию SMTP сервера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	// UseTLS включает implicit TLS (порт 465). Без него gomail использует STARTTLS, если сервер его предлагает.
	UseTLS bool
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:      "localhost",
		Port:      465,
		FromEmail: "noreply@ifsp.edu.br",
		FromName:  "Mural IFSP",
		UseTLS:    true,
	}
}

// ConfigFromApp собирает SMTPConfig из секции email общего конфига.
func ConfigFromApp(cfg *config.Config) *SMTPConfig {
	c := DefaultConfig()
	e := cfg.Email
	if e.SMTPHost != "" {
		c.Host = e.SMTPHost
	}
	if e.SMTPPort > 0 {
		c.Port = e.SMTPPort
	}
	c.Username = e.SMTPUsername
	c.Password = e.SMTPPassword
	if e.FromEmail != "" {
		c.FromEmail = e.FromEmail
	}
	if e.FromName != "" {
		c.FromName = e.FromName
	}
	c.UseTLS = e.UseTLS
	return c
}
