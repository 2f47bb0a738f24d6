package outbound

import (
	"context"

	"github.com/Amdaxx/podcast/domain"
)

type GenerateAudioRequest struct {
	VoicePrompt string
	Voice       domain.VoiceType
}

type GeneratedAudio struct {
	Content  []byte
	Duration float64
}

type AudioGeneratorPort interface {
	Generate(ctx context.Context, req GenerateAudioRequest) (*GeneratedAudio, error)
}
