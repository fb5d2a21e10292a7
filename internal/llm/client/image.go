package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ImageGenerator produces an illustration URL for a prompt. Image
// failures are advisory; the generation pipeline continues without
// the image.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt, size string) (string, error)
}

const defaultImageSize = "1024x1024"

var allowedImageSizes = map[string]bool{
	"1024x1024": true,
	"1024x1536": true,
	"1536x1024": true,
	"auto":      true,
}

// NormalizeImageSize substitutes the default for sizes outside the
// provider's supported enum.
func NormalizeImageSize(size string) string {
	if allowedImageSizes[size] {
		return size
	}
	return defaultImageSize
}

// ImageClient calls the OpenAI images endpoint directly; the chat
// framework does not cover image generation.
type ImageClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewImageClient(apiKey string) *ImageClient {
	return &ImageClient{
		apiKey:  apiKey,
		baseURL: "https://api.openai.com/v1",
		model:   "dall-e-3",
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Generate requests one image and returns its URL.
func (c *ImageClient) Generate(ctx context.Context, prompt, size string) (string, error) {
	body, err := json.Marshal(imageRequest{
		Model:  c.model,
		Prompt: prompt,
		Size:   NormalizeImageSize(size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed imageResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal image response: %w", err)
	}
	if len(parsed.Data) == 0 {
		return "", fmt.Errorf("image response contained no data")
	}
	return parsed.Data[0].URL, nil
}
