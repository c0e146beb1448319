package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/echolingo/echolingo/backend/internal/config"
)

const defaultTTSEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"

// GoogleTTSClient calls the Google Cloud text:synthesize REST endpoint.
type GoogleTTSClient struct {
	cfg        config.SpeechConfig
	endpoint   string
	httpClient *http.Client
}

// NewGoogleTTSClient creates a TTS client with the configured timeout.
func NewGoogleTTSClient(cfg config.SpeechConfig) *GoogleTTSClient {
	return &GoogleTTSClient{
		cfg:      cfg,
		endpoint: defaultTTSEndpoint,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

type ttsRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string `json:"audioEncoding"`
	} `json:"audioConfig"`
}

type ttsResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize requests MP3 synthesis for text with the given voice and
// returns the base64-encoded audio payload as delivered by the provider.
func (c *GoogleTTSClient) Synthesize(ctx context.Context, text, voice string) (string, error) {
	var payload ttsRequest
	payload.Input.Text = text
	payload.Voice.LanguageCode = c.cfg.LanguageCode
	payload.Voice.Name = voice
	payload.AudioConfig.AudioEncoding = "MP3"

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding TTS request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building TTS request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-user-project", c.cfg.ProjectID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading TTS response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{Provider: "google-tts", Status: resp.StatusCode, Body: string(respBody)}
	}

	var decoded ttsResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("decoding TTS response: %w", err)
	}

	return decoded.AudioContent, nil
}
