package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fadilmartias/hireflow/internal/config"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type GeminiServiceInterface interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// GeminiService wraps the genai client with bounded retries, exponential
// backoff with jitter, and a crude consecutive-error circuit breaker.
type GeminiService struct {
	client            *genai.Client
	log               *zap.Logger
	model             string
	embeddingModel    string
	maxRetries        int
	baseDelay         time.Duration
	maxDelay          time.Duration
	requestTimeout    time.Duration
	consecutiveErrors int
	circuitBreakerMax int
}

func NewGeminiService(ctx context.Context, log *zap.Logger) (*GeminiService, error) {
	cfg := config.LoadGeminiConfig()
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		client:            client,
		log:               log,
		model:             cfg.Model,
		embeddingModel:    cfg.EmbeddingModel,
		maxRetries:        3,
		baseDelay:         time.Second,
		maxDelay:          30 * time.Second,
		requestTimeout:    30 * time.Second,
		circuitBreakerMax: 5,
	}, nil
}

func (s *GeminiService) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	var text string
	err := s.doWithRetry(ctx, "GenerateContent", func(ctx context.Context) error {
		result, err := s.client.Models.GenerateContent(
			ctx,
			s.model,
			genai.Text(prompt),
			&genai.GenerateContentConfig{Temperature: genai.Ptr(float32(0.1))},
		)
		if err != nil {
			return err
		}
		if result == nil || len(result.Candidates) == 0 ||
			result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
			return fmt.Errorf("empty response from model")
		}
		text = result.Text()
		return nil
	})
	return text, err
}

func (s *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}
	if len(trimmed) > 10000 {
		s.log.Warn("embedding input truncated", zap.Int("length", len(trimmed)))
		trimmed = trimmed[:10000]
	}

	content := []*genai.Content{genai.NewContentFromText(trimmed, genai.RoleUser)}

	var values []float32
	err := s.doWithRetry(ctx, "GenerateEmbedding", func(ctx context.Context) error {
		result, err := s.client.Models.EmbedContent(ctx, s.embeddingModel, content, nil)
		if err != nil {
			return err
		}
		if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
			return fmt.Errorf("empty embedding response")
		}
		for i, v := range result.Embeddings[0].Values {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return fmt.Errorf("invalid embedding value at index %d: %v", i, v)
			}
		}
		values = result.Embeddings[0].Values
		return nil
	})
	return values, err
}

func (s *GeminiService) doWithRetry(ctx context.Context, op string, call func(ctx context.Context) error) error {
	if s.consecutiveErrors >= s.circuitBreakerMax {
		return fmt.Errorf("circuit breaker open: %d consecutive errors", s.consecutiveErrors)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			delay := s.backoff(attempt)
			s.log.Info("retrying gemini call",
				zap.String("op", op), zap.Int("attempt", attempt), zap.Duration("delay", delay))
			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		err := call(timeoutCtx)
		if err == nil {
			s.consecutiveErrors = 0
			return nil
		}
		lastErr = err

		if !isRetryable(err) {
			s.consecutiveErrors++
			return fmt.Errorf("%s failed: %w", op, err)
		}
		s.log.Warn("retryable gemini error", zap.String("op", op), zap.Error(err))
	}

	s.consecutiveErrors++
	return fmt.Errorf("max retries (%d) exceeded for %s: %w", s.maxRetries, op, lastErr)
}

func (s *GeminiService) backoff(attempt int) time.Duration {
	delay := s.baseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.maxDelay {
		delay = s.maxDelay
	}
	jitter := time.Duration(float64(delay) * 0.25)
	return delay - jitter/2 + time.Duration(float64(jitter)*0.5)
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "context canceled") || strings.Contains(msg, "context deadline exceeded") {
		return false
	}
	if apiErr, ok := err.(*genai.APIError); ok {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		case 400, 401, 403, 404:
			return false
		}
	}
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "temporary failure") ||
		strings.Contains(msg, "EOF")
}
