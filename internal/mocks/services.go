package mocks

import (
	"context"

	"github.com/carewear/carevoice/internal/domain"
)

// MockSpeechService is a mock implementation of SpeechService. Canned
// responses are keyed by the raw audio payload.
type MockSpeechService struct {
	Responses       map[string]string
	DefaultResponse string
	TranscribeFunc  func(ctx context.Context, audio []byte) (string, error)
}

func NewMockSpeechService() *MockSpeechService {
	return &MockSpeechService{
		Responses: make(map[string]string),
	}
}

func (m *MockSpeechService) SetResponse(audioID, text string) {
	m.Responses[audioID] = text
}

func (m *MockSpeechService) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audio)
	}
	if text, ok := m.Responses[string(audio)]; ok {
		return text, nil
	}
	return m.DefaultResponse, nil
}

// MockIntentService is a mock implementation of IntentService. Canned
// intents are keyed by transcript; unknown transcripts classify to the
// UNKNOWN sentinel, matching the real adapter's failure contract.
type MockIntentService struct {
	Intents      map[string]*domain.Intent
	ClassifyFunc func(ctx context.Context, text string) *domain.Intent
}

func NewMockIntentService() *MockIntentService {
	return &MockIntentService{
		Intents: make(map[string]*domain.Intent),
	}
}

func (m *MockIntentService) SetIntent(text string, intent *domain.Intent) {
	m.Intents[text] = intent
}

func (m *MockIntentService) Classify(ctx context.Context, text string) *domain.Intent {
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, text)
	}
	if intent, ok := m.Intents[text]; ok {
		return intent
	}
	return domain.UnknownIntent()
}
