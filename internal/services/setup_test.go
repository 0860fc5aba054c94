package services_test

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"mural_backend/internal/config"
	"mural_backend/internal/email"
	"mural_backend/internal/imageprocessor"
	"mural_backend/internal/media"
	"mural_backend/internal/services"
	"mural_backend/internal/transcription"
	"mural_backend/pkg/apperrors"

	"github.com/stretchr/testify/require"
)

const (
	testMaxUpload        = 1 << 20
	testVideoPlaceholder = "/static/images/video-placeholder.png"
	testPDFPlaceholder   = "/static/images/pdf-placeholder.png"
)

var errNoBinary = errors.New("binary not installed")

// stubTools имитирует ffprobe/ffmpeg/pdftoppm без внешних процессов
type stubTools struct {
	duration float64
	probeErr error
	frame    image.Image
}

func (s *stubTools) ProbeDuration(context.Context, string) (float64, error) {
	return s.duration, s.probeErr
}

func (s *stubTools) ExtractFrame(context.Context, string, float64) (image.Image, error) {
	if s.frame == nil {
		return nil, errNoBinary
	}
	return s.frame, nil
}

func (s *stubTools) RenderPDFPage(context.Context, string, int, int) (string, func(), error) {
	return "", func() {}, errNoBinary
}

func (s *stubTools) ConvertToLinear16(context.Context, string, int) ([]byte, error) {
	return nil, errNoBinary
}

type stubTranscriber struct {
	result transcription.Result
}

func (s *stubTranscriber) Transcribe(context.Context, string, transcription.Options) transcription.Result {
	return s.result
}

type event struct {
	Type string
	Data interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []event
}

func (r *recordingBroadcaster) Broadcast(eventType string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{Type: eventType, Data: data})
}

func (r *recordingBroadcaster) Events() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event(nil), r.events...)
}

// recordingProvider запоминает отправленные шаблоны
type recordingProvider struct {
	mu   sync.Mutex
	sent []sentEmail
}

type sentEmail struct {
	To       string
	Template string
	Data     email.TemplateData
}

func (p *recordingProvider) Send(*email.Email) error { return nil }

func (p *recordingProvider) SendTemplate(to []string, subject, templateName string, data email.TemplateData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, sentEmail{To: to[0], Template: templateName, Data: data})
	return nil
}

func (p *recordingProvider) Validate() error { return nil }
func (p *recordingProvider) Close() error    { return nil }

func (p *recordingProvider) Sent() []sentEmail {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]sentEmail(nil), p.sent...)
}

func newPipeline(t *testing.T, tl *stubTools, tr transcription.Transcriber) (services.MediaPipeline, string) {
	t.Helper()
	root := t.TempDir()
	placer := media.NewPlacer(root, "/static/uploads")
	require.NoError(t, placer.EnsureLayout())

	if tl == nil {
		tl = &stubTools{probeErr: errNoBinary}
	}
	proc := media.NewProcessor(media.ProcessorConfig{
		ThumbnailSize:    400,
		PDFDPI:           150,
		VideoPlaceholder: testVideoPlaceholder,
		PDFPlaceholder:   testPDFPlaceholder,
		DefaultLanguage:  "pt",
	}, tl, imageprocessor.NewProcessor(85, 1920), tr, placer)

	return services.MediaPipeline{
		Validator: media.NewFormatValidator(media.AllowedFromConfig(config.DefaultAllowedExtensions), testMaxUpload),
		Placer:    placer,
		Processor: proc,
	}, root
}

func newEmailService() (*services.EmailService, *recordingProvider) {
	p := &recordingProvider{}
	return services.NewEmailService(p), p
}

func requireAppError(t *testing.T, err error, status int) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	require.Equal(t, status, appErr.HTTPCode, appErr.Message)
	return appErr
}

func filesIn(t *testing.T, dir string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			out = append(out, path)
		}
		return nil
	})
	require.NoError(t, err)
	return out
}
