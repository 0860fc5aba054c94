package services

import (
	"context"
	"log/slog"
	"sync"

	"mural_backend/internal/auth"
	"mural_backend/internal/email"
	"mural_backend/internal/logger"
	"mural_backend/internal/models"
)

var reportActionLabels = map[models.ReportAction]string{
	models.ReportActionIgnore: "denúncia arquivada, o conteúdo foi mantido",
	models.ReportActionHide:   "conteúdo ocultado",
	models.ReportActionRemove: "conteúdo removido",
}

var reportTargetLabels = map[models.ReportTarget]string{
	models.ReportTargetPost:    "uma postagem",
	models.ReportTargetComment: "um comentário",
}

// EmailService предоставляет высокоуровневый интерфейс для писем мурала
type EmailService struct {
	provider email.Provider
	wg       sync.WaitGroup
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(provider email.Provider) *EmailService {
	return &EmailService{
		provider: provider,
	}
}

func (s *EmailService) SendVerificationCode(ctx context.Context, to, username, code string) error {
	return s.provider.SendTemplate([]string{to}, "Mural IFSP - Código de verificação", email.TemplateVerificationCode, email.TemplateData{
		"Username":       username,
		"Code":           code,
		"ExpiresMinutes": int(auth.VerificationCodeTTL.Minutes()),
	})
}

func (s *EmailService) SendBanNotice(ctx context.Context, to, username, reason string) error {
	return s.provider.SendTemplate([]string{to}, "Mural IFSP - Conta suspensa", email.TemplateBanNotice, email.TemplateData{
		"Username": username,
		"Reason":   reason,
	})
}

func (s *EmailService) SendReportResolved(ctx context.Context, to, username string, target models.ReportTarget, action models.ReportAction) error {
	return s.provider.SendTemplate([]string{to}, "Mural IFSP - Denúncia analisada", email.TemplateReportResolved, email.TemplateData{
		"Username":    username,
		"ContentType": reportTargetLabels[target],
		"Action":      reportActionLabels[action],
	})
}

// Go отправляет письмо в фоне. Ошибка только логируется: запрос не ждет SMTP.
func (s *EmailService) Go(ctx context.Context, kind string, send func(ctx context.Context) error) {
	log := logger.FromContext(ctx)
	// контекст запроса отменится раньше, чем уйдет письмо
	bg := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := send(bg); err != nil {
			log.Error("failed to send email", slog.String("kind", kind), slog.String("error", err.Error()))
			return
		}
		log.Debug("email sent", slog.String("kind", kind))
	}()
}

// Wait ждет все фоновые отправки (shutdown и тесты)
func (s *EmailService) Wait() {
	s.wg.Wait()
}

func (s *EmailService) Close() error {
	s.Wait()
	return s.provider.Close()
}
