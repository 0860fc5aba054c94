package transcription

import (
	"context"
	"testing"
	"time"

	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/durationpb"
)

func TestParseRecognizeResponse(t *testing.T) {
	resp := &speechpb.RecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{
			{
				Alternatives: []*speechpb.SpeechRecognitionAlternative{{
					Transcript: " bom dia ",
					Confidence: 0.9,
					Words: []*speechpb.WordInfo{
						{Word: "bom", StartTime: durationpb.New(500 * time.Millisecond), EndTime: durationpb.New(time.Second)},
						{Word: "dia", StartTime: durationpb.New(time.Second), EndTime: durationpb.New(1500 * time.Millisecond)},
					},
				}},
				LanguageCode: "pt-br",
			},
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "   "}}},
			{
				Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "turma", Confidence: 0.7}},
				ResultEndTime: durationpb.New(3 * time.Second),
			},
		},
	}

	raw := parseRecognizeResponse(resp)
	assert.Equal(t, "bom dia turma", raw.Text)
	assert.Equal(t, "pt", raw.Language)
	require.Len(t, raw.Segments, 2)
	assert.InDelta(t, 0.5, raw.Segments[0].Start, 0.001)
	assert.InDelta(t, 1.5, raw.Segments[0].End, 0.001)
	assert.InDelta(t, 0.1, raw.Segments[0].NoSpeechProb, 0.001)
	assert.InDelta(t, 1.5, raw.Segments[1].Start, 0.001)
	assert.InDelta(t, 3.0, raw.Segments[1].End, 0.001)
}

func TestParseRecognizeResponse_Empty(t *testing.T) {
	raw := parseRecognizeResponse(nil)
	assert.Empty(t, raw.Text)
	assert.Empty(t, raw.Segments)
}

func TestGoogleEngine_RequiresTools(t *testing.T) {
	_, err := (&GoogleEngine{}).Load(context.Background())
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestGoogleLanguageCode(t *testing.T) {
	assert.Equal(t, "pt-BR", googleLanguageCode("auto"))
	assert.Equal(t, "pt-BR", googleLanguageCode("pt"))
	assert.Equal(t, "en-US", googleLanguageCode("en"))
	assert.Equal(t, "fr-FR", googleLanguageCode("fr-FR"))
}
