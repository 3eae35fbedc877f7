package config

import (
	"os"
	"sync"
)

type GroqConfig struct {
	APIKey string
	Model  string
}

var (
	groqConfig *GroqConfig
	groqOnce   sync.Once
)

func LoadGroqConfig() *GroqConfig {
	groqOnce.Do(func() {
		model := os.Getenv("GROQ_MODEL")
		if model == "" {
			model = "llama-3.3-70b-versatile"
		}
		groqConfig = &GroqConfig{
			APIKey: os.Getenv("GROQ_API_KEY"),
			Model:  model,
		}
	})
	return groqConfig
}
