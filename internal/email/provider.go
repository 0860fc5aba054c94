package email

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendTemplate рендерит шаблон и отправляет его как HTML письмо
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Validate проверяет конфигурацию провайдера
	Validate() error

	// Close закрывает соединение с провайдером
	Close() error
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
	LoadTemplates(dirPath string) error
}

const (
	ModeSMTP = "smtp"
	ModeLog  = "log"
)

// NewProvider выбирает провайдера по email.mode. Всё, кроме "smtp", пишет письма в лог.
func NewProvider(cfg *SMTPConfig, mode string, renderer TemplateRenderer) Provider {
	if mode == ModeSMTP {
		return NewSMTPProvider(cfg, renderer)
	}
	return NewLogProvider(cfg, renderer)
}
