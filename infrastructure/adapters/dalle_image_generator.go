package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Amdaxx/podcast/application/ports/outbound"
	"github.com/Amdaxx/podcast/config"
)

type DalleApiRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	Size           string `json:"size"`
	Number         int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

type DalleApiResponse struct {
	Data []struct {
		B64Json string `json:"b64_json"`
	} `json:"data"`
}

type dalleImageGenerator struct {
	ContentFetcher
	logger      outbound.LoggerPort
	dalleConfig *config.DaLLeConfig
}

func NewDalleImageGenerator(contentFetcher ContentFetcher, dalleConfig *config.DaLLeConfig, logger outbound.LoggerPort) outbound.ImageGeneratorPort {
	return &dalleImageGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		dalleConfig:    dalleConfig,
	}
}

func (g *dalleImageGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	req, err := g.getRequest(ctx, prompt)
	if err != nil {
		g.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	rawRes, err := g.FetchContent(req)
	if err != nil {
		g.logger.Error(err, "Failed to fetch the content")
		return nil, err
	}

	var dalleRes DalleApiResponse
	if err := json.Unmarshal(rawRes, &dalleRes); err != nil {
		g.logger.Error(err, "Failed to unmarshal the response")
		return nil, err
	}
	if len(dalleRes.Data) == 0 {
		err := fmt.Errorf("image response contained no data")
		g.logger.Error(err, "Empty image generation response")
		return nil, err
	}

	decodedImage, err := base64.StdEncoding.DecodeString(dalleRes.Data[0].B64Json)
	if err != nil {
		g.logger.Error(err, "Failed to decode the image")
		return nil, err
	}

	return decodedImage, nil
}

func (g *dalleImageGenerator) getRequest(ctx context.Context, prompt string) (*http.Request, error) {
	reqBody := DalleApiRequest{
		Model:          g.dalleConfig.Model,
		Prompt:         prompt,
		Size:           g.dalleConfig.Size,
		Number:         1,
		ResponseFormat: "b64_json",
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		g.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.dalleConfig.ApiUrl, bytes.NewBuffer(jsonPayload))
	if err != nil {
		g.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	reqHeaders := map[string]string{
		"Authorization": "Bearer " + g.dalleConfig.ApiKey,
		"Content-Type":  "application/json",
	}
	for key, value := range reqHeaders {
		req.Header.Add(key, value)
	}

	return req, nil
}
