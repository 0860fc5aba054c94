// Package transcription turns audio files into text.
//
// An Adapter owns one Engine. The engine's model is loaded at most once per
// process, on first use, and shared by every later call. Transcribe never
// returns an error: failures come back as a Result with Success=false.
package transcription

import (
	"context"
	"errors"
	"math"
	"os"
	"strings"
	"sync"

	"mural_backend/internal/config"
	"mural_backend/internal/logger"
	"mural_backend/internal/media/tools"
	"mural_backend/internal/metrics"
)

// ErrNotInstalled: the engine (binary, library or credentials) is not available.
var ErrNotInstalled = errors.New("transcription engine not installed")

const LanguageAuto = "auto"

type Options struct {
	Language     string // "auto" -> detect
	WithSegments bool
}

type Segment struct {
	Start        float64 `json:"inicio"`
	End          float64 `json:"fim"`
	Text         string  `json:"texto"`
	NoSpeechProb float64 `json:"no_speech_prob"`
}

type Result struct {
	Success      bool      `json:"sucesso"`
	Text         *string   `json:"texto"`
	Language     string    `json:"idioma_detectado,omitempty"`
	Segments     []Segment `json:"segmentos,omitempty"`
	SegmentCount int       `json:"total_segmentos"`
	Confidence   float64   `json:"confianca"`
	Error        string    `json:"erro,omitempty"`
}

// Raw is what a loaded model returns before normalization.
type Raw struct {
	Text     string
	Language string
	Segments []Segment
}

type Model interface {
	Transcribe(ctx context.Context, path string, opts Options) (Raw, error)
}

type Engine interface {
	Name() string
	Load(ctx context.Context) (Model, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, path string, opts Options) Result
}

// Adapter lazily loads its engine and normalizes results.
type Adapter struct {
	engine          Engine
	defaultLanguage string

	once    sync.Once
	model   Model
	loadErr error
}

func NewAdapter(engine Engine, defaultLanguage string) *Adapter {
	if defaultLanguage == "" {
		defaultLanguage = "pt"
	}
	return &Adapter{engine: engine, defaultLanguage: defaultLanguage}
}

// New picks the engine from config.
func New(cfg *config.Config, t tools.Tools) *Adapter {
	tc := cfg.Transcription
	var engine Engine
	switch strings.ToLower(tc.Engine) {
	case "google":
		engine = &GoogleEngine{CredentialsFile: tc.GoogleCredentials, Tools: t}
	case "none", "":
		engine = NoopEngine{}
	default:
		engine = &WhisperEngine{
			Binary:    tc.WhisperPath,
			ModelName: tc.Model,
			Timeout:   cfg.ProcessTimeout(),
		}
	}
	return NewAdapter(engine, tc.Language)
}

func (a *Adapter) EngineName() string { return a.engine.Name() }

// load runs once; the model or the error is cached for the process lifetime.
func (a *Adapter) load(ctx context.Context) (Model, error) {
	a.once.Do(func() {
		// отмена первого запроса не должна закэшировать ошибку навсегда
		loadCtx := context.WithoutCancel(ctx)
		logger.Info("loading transcription model", "engine", a.engine.Name())
		a.model, a.loadErr = a.engine.Load(loadCtx)
		if a.loadErr != nil {
			logger.Warn("transcription model unavailable", "engine", a.engine.Name(), "error", a.loadErr.Error())
		}
	})
	return a.model, a.loadErr
}

func (a *Adapter) Transcribe(ctx context.Context, path string, opts Options) Result {
	if opts.Language == "" {
		opts.Language = a.defaultLanguage
	}

	if _, err := os.Stat(path); err != nil {
		return a.fail("arquivo não encontrado")
	}

	model, err := a.load(ctx)
	if err != nil {
		return a.fail(err.Error())
	}

	raw, err := model.Transcribe(ctx, path, opts)
	if err != nil {
		logger.CtxWarn(ctx, "transcription failed", "engine", a.engine.Name(), "error", err.Error())
		return a.fail(err.Error())
	}

	metrics.TranscriptionsTotal.WithLabelValues(a.engine.Name(), "success").Inc()
	return buildResult(raw, opts)
}

func (a *Adapter) fail(msg string) Result {
	metrics.TranscriptionsTotal.WithLabelValues(a.engine.Name(), "failure").Inc()
	return Result{Success: false, Text: nil, Error: msg}
}

func buildResult(raw Raw, opts Options) Result {
	text := strings.TrimSpace(raw.Text)
	lang := raw.Language
	if lang == "" && opts.Language != LanguageAuto {
		lang = opts.Language
	}

	res := Result{
		Success:      true,
		Text:         &text,
		Language:     lang,
		SegmentCount: len(raw.Segments),
		Confidence:   Confidence(raw.Segments),
	}
	if opts.WithSegments && len(raw.Segments) > 0 {
		res.Segments = make([]Segment, len(raw.Segments))
		for i, s := range raw.Segments {
			s.Text = strings.TrimSpace(s.Text)
			res.Segments[i] = s
		}
	}
	return res
}

// Confidence = 1 - mean(no_speech_prob), rounded to two decimals; 0 without segments.
func Confidence(segments []Segment) float64 {
	if len(segments) == 0 {
		return 0
	}
	var sum float64
	for _, s := range segments {
		sum += s.NoSpeechProb
	}
	c := 1 - sum/float64(len(segments))
	return math.Round(c*100) / 100
}
