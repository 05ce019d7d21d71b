package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/carewear/carevoice/internal/domain"
	"github.com/carewear/carevoice/pkg/config"
)

const endpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"

// Gemini sometimes wraps the JSON in prose; extract the object.
var jsonPattern = regexp.MustCompile(`(?s)\{.*\}`)

const promptTemplate = `
あなたは介護施設で使用されるARグラスのコマンド解析AIです。
以下の音声テキストを分析し、適切なコマンドとパラメータに変換してください。

コマンド一覧:
- GET_PATIENT_INFO: 患者情報の取得（例: "山田さんの情報表示"）
  必要パラメータ: patientName
- RECORD_VITAL: バイタルサイン記録（例: "鈴木さんの体温は37.2度、血圧は138-85"）
  必要パラメータ: patientName, vitalType, vitalValue
- RECORD_MEAL: 食事摂取記録（例: "佐藤さん、昼食8割摂取"）
  必要パラメータ: patientName, mealType, amount
- RECORD_MEDICINE: 投薬記録（例: "田中さん、降圧剤投与完了"）
  必要パラメータ: patientName, medicine
- CALL_STAFF: スタッフ呼び出し（例: "田中看護師を呼んで"）
  必要パラメータ: staffName
- EMERGENCY: 緊急事態通報（例: "緊急、102号室"）
  必要パラメータ: location

音声テキスト: "%s"

以下のJSONフォーマットで返答してください:
{
  "command": "コマンド名",
  "parameters": {
    "param1": "値1",
    "param2": "値2"
  },
  "confidence": 0.0〜1.0の信頼度
}
`

// Classifier turns transcripts into intents via the Gemini
// generateContent REST API. It never returns an error: every internal
// failure collapses into the UNKNOWN sentinel so the confidence gate
// rejects the request downstream.
type Classifier struct {
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        *zap.Logger
}

func NewClassifier(apiKey string, cb config.CircuitBreakerConfig, log *zap.Logger) *Classifier {
	var breaker *gobreaker.CircuitBreaker
	if cb.Enabled {
		breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "gemini-classifier",
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

	return &Classifier{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		breaker:    breaker,
		log:        log,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Classifier) Classify(ctx context.Context, text string) *domain.Intent {
	prompt := fmt.Sprintf(promptTemplate, text)

	var response string
	var err error
	if c.breaker != nil {
		var result interface{}
		result, err = c.breaker.Execute(func() (interface{}, error) {
			return c.generate(ctx, prompt)
		})
		if err == nil {
			response = result.(string)
		}
	} else {
		response, err = c.generate(ctx, prompt)
	}
	if err != nil {
		c.log.Error("command classification failed", zap.Error(err))
		return domain.UnknownIntent()
	}

	raw := jsonPattern.FindString(response)
	if raw == "" {
		c.log.Warn("classifier response carried no JSON object")
		return domain.UnknownIntent()
	}

	var intent domain.Intent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		c.log.Error("failed to decode classifier response", zap.Error(err))
		return domain.UnknownIntent()
	}
	if intent.Parameters == nil {
		intent.Parameters = map[string]any{}
	}
	return &intent
}

func (c *Classifier) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini: API key not configured")
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := endpoint + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: API error status %d", resp.StatusCode)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no candidates returned")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
