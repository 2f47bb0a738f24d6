package config

import (
	"fmt"
	"os"
)

type TTSConfig struct {
	ApiUrl string
	ApiKey string
	Model  string
}

func GetTTSConfig() (*TTSConfig, error) {
	apiUrl := os.Getenv("TTS_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("TTS_API_URL must be set")
	}
	apiKey := os.Getenv("TTS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("TTS_API_KEY must be set")
	}
	model := os.Getenv("TTS_MODEL")
	if model == "" {
		return nil, fmt.Errorf("TTS_MODEL must be set")
	}

	return &TTSConfig{
		ApiUrl: apiUrl,
		ApiKey: apiKey,
		Model:  model,
	}, nil
}
