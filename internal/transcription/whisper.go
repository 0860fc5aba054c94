package transcription

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"mural_backend/internal/media/tools"
)

var whisperModels = map[string]struct{}{
	"tiny": {}, "base": {}, "small": {}, "medium": {}, "large": {},
}

// WhisperEngine drives the openai-whisper command line tool.
type WhisperEngine struct {
	Binary    string
	ModelName string
	Timeout   time.Duration

	// Для тестов
	LookPath func(string) (string, error)
	Runner   tools.Runner
}

func (e *WhisperEngine) Name() string { return "whisper" }

func (e *WhisperEngine) Load(ctx context.Context) (Model, error) {
	binary := e.Binary
	if binary == "" {
		binary = "whisper"
	}
	lookPath := e.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	resolved, err := lookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("%w: whisper not found (%s)", ErrNotInstalled, binary)
	}

	model := e.ModelName
	if model == "" {
		model = "base"
	}
	if _, ok := whisperModels[model]; !ok {
		return nil, fmt.Errorf("unknown whisper model %q", model)
	}

	run := e.Runner
	if run == nil {
		run = tools.ExecRunner
	}
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &whisperModel{binary: resolved, model: model, run: run, timeout: timeout}, nil
}

type whisperModel struct {
	binary  string
	model   string
	run     tools.Runner
	timeout time.Duration
}

// whisper --output_format json
type whisperOutput struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start        float64 `json:"start"`
		End          float64 `json:"end"`
		Text         string  `json:"text"`
		NoSpeechProb float64 `json:"no_speech_prob"`
	} `json:"segments"`
}

func (m *whisperModel) Transcribe(ctx context.Context, path string, opts Options) (Raw, error) {
	outDir, err := os.MkdirTemp("", "mural-whisper-*")
	if err != nil {
		return Raw{}, fmt.Errorf("mkdir temp: %w", err)
	}
	defer os.RemoveAll(outDir)

	args := []string{
		path,
		"--model", m.model,
		"--output_format", "json",
		"--output_dir", outDir,
		"--fp16", "False",
		"--verbose", "False",
	}
	if opts.Language != "" && opts.Language != LanguageAuto {
		args = append(args, "--language", opts.Language)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if _, err := m.run(ctx, m.binary, args...); err != nil {
		return Raw{}, err
	}

	matches, _ := filepath.Glob(filepath.Join(outDir, "*.json"))
	if len(matches) == 0 {
		return Raw{}, fmt.Errorf("whisper produced no output")
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		return Raw{}, fmt.Errorf("read whisper output: %w", err)
	}

	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Raw{}, fmt.Errorf("parse whisper output: %w", err)
	}

	raw := Raw{Text: out.Text, Language: out.Language}
	for _, s := range out.Segments {
		raw.Segments = append(raw.Segments, Segment{
			Start:        s.Start,
			End:          s.End,
			Text:         s.Text,
			NoSpeechProb: s.NoSpeechProb,
		})
	}
	return raw, nil
}
