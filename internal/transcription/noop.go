package transcription

import (
	"context"
	"fmt"
)

// NoopEngine is selected by engine "none".
type NoopEngine struct{}

func (NoopEngine) Name() string { return "none" }

func (NoopEngine) Load(ctx context.Context) (Model, error) {
	return nil, fmt.Errorf("%w: transcription disabled", ErrNotInstalled)
}
