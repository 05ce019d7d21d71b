package ports

import (
	"context"
	"time"

	"github.com/carewear/carevoice/internal/domain"
)

// SpeechService transcribes recorded audio. An empty transcript with a
// nil error means the recognizer produced no result.
type SpeechService interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// IntentService turns transcribed text into a structured intent. It
// always succeeds structurally: implementations convert their internal
// failures into the UNKNOWN sentinel with confidence 0 instead of
// propagating them.
type IntentService interface {
	Classify(ctx context.Context, text string) *domain.Intent
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}
