package google

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/carewear/carevoice/pkg/config"
)

const endpoint = "https://speech.googleapis.com/v1/speech:recognize"

// Client transcribes Japanese speech via the Cloud Speech REST API.
// Audio is expected as LINEAR16 at 16 kHz, the AR-glass recording
// format. An empty transcript with a nil error means the recognizer
// produced no result.
type Client struct {
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        *zap.Logger
}

func NewClient(apiKey string, cb config.CircuitBreakerConfig, log *zap.Logger) *Client {
	var breaker *gobreaker.CircuitBreaker
	if cb.Enabled {
		breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "speech-recognizer",
			MaxRequests: uint32(cb.MaxRequests),
			Interval:    cb.Interval,
			Timeout:     cb.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= cb.FailureThreshold
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Warn("circuit breaker state changed",
					zap.String("name", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		})
	}

	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		breaker:    breaker,
		log:        log,
	}
}

type recognizeRequest struct {
	Config recognitionConfig `json:"config"`
	Audio  recognitionAudio  `json:"audio"`
}

type recognitionConfig struct {
	Encoding                   string `json:"encoding"`
	SampleRateHertz            int    `json:"sampleRateHertz"`
	LanguageCode               string `json:"languageCode"`
	Model                      string `json:"model"`
	EnableAutomaticPunctuation bool   `json:"enableAutomaticPunctuation"`
	UseEnhanced                bool   `json:"useEnhanced"`
}

type recognitionAudio struct {
	Content string `json:"content"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"results"`
}

func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if c.breaker == nil {
		return c.recognize(ctx, audio)
	}
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.recognize(ctx, audio)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *Client) recognize(ctx context.Context, audio []byte) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("speech: API key not configured")
	}

	payload, err := json.Marshal(recognizeRequest{
		Config: recognitionConfig{
			Encoding:                   "LINEAR16",
			SampleRateHertz:            16000,
			LanguageCode:               "ja-JP",
			Model:                      "default",
			EnableAutomaticPunctuation: true,
			UseEnhanced:                true,
		},
		Audio: recognitionAudio{
			Content: base64.StdEncoding.EncodeToString(audio),
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech: marshal request: %w", err)
	}

	url := endpoint + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("speech: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("speech: API error status %d", resp.StatusCode)
	}

	var result recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("speech: decode response: %w", err)
	}

	// No results is a valid outcome, not an error.
	transcripts := make([]string, 0, len(result.Results))
	for _, r := range result.Results {
		if len(r.Alternatives) > 0 {
			transcripts = append(transcripts, r.Alternatives[0].Transcript)
		}
	}
	return strings.Join(transcripts, "\n"), nil
}
