package transcription

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/durationpb"

	"mural_backend/internal/media/tools"
)

const googleSampleRate = 16000

// GoogleEngine uses Cloud Speech-to-Text synchronous recognition,
// which caps audio at about one minute.
type GoogleEngine struct {
	CredentialsFile string
	Tools           tools.Tools
}

func (e *GoogleEngine) Name() string { return "google" }

func (e *GoogleEngine) Load(ctx context.Context) (Model, error) {
	if e.Tools == nil {
		return nil, fmt.Errorf("%w: ffmpeg tools required for google engine", ErrNotInstalled)
	}
	var opts []option.ClientOption
	if e.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(e.CredentialsFile))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: speech client: %v", ErrNotInstalled, err)
	}
	return &googleModel{client: client, tools: e.Tools}, nil
}

type googleModel struct {
	client *speech.Client
	tools  tools.Tools
}

func (m *googleModel) Transcribe(ctx context.Context, path string, opts Options) (Raw, error) {
	pcm, err := m.tools.ConvertToLinear16(ctx, path, googleSampleRate)
	if err != nil {
		return Raw{}, fmt.Errorf("convert audio: %w", err)
	}

	resp, err := m.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            googleSampleRate,
			LanguageCode:               googleLanguageCode(opts.Language),
			EnableWordTimeOffsets:      true,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: pcm},
		},
	})
	if err != nil {
		return Raw{}, fmt.Errorf("speech recognize: %w", err)
	}
	return parseRecognizeResponse(resp), nil
}

func parseRecognizeResponse(resp *speechpb.RecognizeResponse) Raw {
	var raw Raw
	if resp == nil {
		return raw
	}

	var full strings.Builder
	var prevEnd float64
	for _, r := range resp.Results {
		if r == nil || len(r.Alternatives) == 0 || r.Alternatives[0] == nil {
			continue
		}
		alt := r.Alternatives[0]
		text := strings.TrimSpace(alt.Transcript)
		if text == "" {
			continue
		}
		if full.Len() > 0 {
			full.WriteString(" ")
		}
		full.WriteString(text)

		seg := Segment{
			Start:        prevEnd,
			End:          durToSec(r.ResultEndTime),
			Text:         text,
			NoSpeechProb: 1 - float64(alt.Confidence),
		}
		if len(alt.Words) > 0 {
			seg.Start = durToSec(alt.Words[0].StartTime)
			seg.End = durToSec(alt.Words[len(alt.Words)-1].EndTime)
		}
		prevEnd = seg.End
		raw.Segments = append(raw.Segments, seg)

		if raw.Language == "" && r.LanguageCode != "" {
			raw.Language = strings.ToLower(strings.SplitN(r.LanguageCode, "-", 2)[0])
		}
	}
	raw.Text = full.String()
	return raw
}

func googleLanguageCode(lang string) string {
	switch strings.ToLower(lang) {
	case "", LanguageAuto, "pt":
		return "pt-BR"
	case "en":
		return "en-US"
	case "es":
		return "es-ES"
	default:
		return lang
	}
}

func durToSec(d *durationpb.Duration) float64 {
	if d == nil {
		return 0
	}
	return d.AsDuration().Seconds()
}
