package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/hireflow/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

type GroqServiceInterface interface {
	Chat(ctx context.Context, system, user string, temperature float64) (string, error)
}

// GroqService is a thin chat-completions client over the Groq OpenAI-style
// API.
type GroqService struct {
	apiKey string
	model  string
	client *resty.Client
}

func NewGroqService() *GroqService {
	cfg := config.LoadGroqConfig()
	return &GroqService{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		client: resty.New().SetBaseURL(groqBaseURL).SetTimeout(30 * time.Second),
	}
}

func (s *GroqService) Chat(ctx context.Context, system, user string, temperature float64) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("GROQ_API_KEY not set")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model":       s.model,
			"temperature": temperature,
			"messages": []map[string]string{
				{"role": "system", "content": system},
				{"role": "user", "content": user},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("groq api error (%d): %s", resp.StatusCode(), resp.String())
	}

	content := gjson.Get(resp.String(), "choices.0.message.content").String()
	if content == "" {
		return "", fmt.Errorf("no choices in groq response")
	}
	return content, nil
}
