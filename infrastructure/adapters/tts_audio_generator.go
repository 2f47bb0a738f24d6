package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/Amdaxx/podcast/application/ports/outbound"
	"github.com/Amdaxx/podcast/config"
	"github.com/tcolgate/mp3"
)

type SpeechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

type ttsAudioGenerator struct {
	ContentFetcher
	logger    outbound.LoggerPort
	ttsConfig *config.TTSConfig
}

func NewTTSAudioGenerator(contentFetcher ContentFetcher, ttsConfig *config.TTSConfig, logger outbound.LoggerPort) outbound.AudioGeneratorPort {
	return &ttsAudioGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		ttsConfig:      ttsConfig,
	}
}

func (g *ttsAudioGenerator) Generate(ctx context.Context, generateReq outbound.GenerateAudioRequest) (*outbound.GeneratedAudio, error) {
	req, err := g.getRequest(ctx, generateReq.VoicePrompt, string(generateReq.Voice))
	if err != nil {
		g.logger.ErrorWithFields(err, "Failed to construct the HTTP request for audio generation", map[string]interface{}{
			"voice": generateReq.Voice,
		})
		return nil, err
	}

	content, err := g.FetchContent(req)
	if err != nil {
		return nil, err
	}

	duration, err := mp3Duration(content)
	if err != nil {
		// The asset still plays; the client just loses the progress bar.
		g.logger.Warn("Failed to measure audio duration: " + err.Error())
		duration = 0
	}

	return &outbound.GeneratedAudio{
		Content:  content,
		Duration: duration,
	}, nil
}

func (g *ttsAudioGenerator) getRequest(ctx context.Context, prompt string, voice string) (*http.Request, error) {
	reqBody := SpeechRequest{
		Model:          g.ttsConfig.Model,
		Input:          prompt,
		Voice:          voice,
		ResponseFormat: "mp3",
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.ttsConfig.ApiUrl, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}

	reqHeaders := map[string]string{
		"Accept":        "audio/mpeg",
		"Authorization": "Bearer " + g.ttsConfig.ApiKey,
		"Content-Type":  "application/json",
	}
	for key, value := range reqHeaders {
		req.Header.Add(key, value)
	}

	return req, nil
}

// mp3Duration walks the MP3 frames and sums their play time.
func mp3Duration(content []byte) (float64, error) {
	decoder := mp3.NewDecoder(bytes.NewReader(content))

	var frame mp3.Frame
	var skipped int
	var total time.Duration

	for {
		if err := decoder.Decode(&frame, &skipped); err != nil {
			if err == io.EOF {
				break
			}
			return 0, err
		}
		total += frame.Duration()
	}

	return total.Seconds(), nil
}
