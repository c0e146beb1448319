package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/echolingo/echolingo/backend/internal/config"
)

const defaultSTTEndpoint = "https://speech.googleapis.com/v1/speech:recognize"

// Fixed recognition profile: the web client records WebM/Opus at 48kHz.
const (
	sttEncoding   = "WEBM_OPUS"
	sttSampleRate = 48000
)

// GoogleSTTClient calls the Google Cloud speech:recognize REST endpoint.
type GoogleSTTClient struct {
	cfg        config.SpeechConfig
	endpoint   string
	httpClient *http.Client
}

// NewGoogleSTTClient creates an STT client with the configured timeout.
func NewGoogleSTTClient(cfg config.SpeechConfig) *GoogleSTTClient {
	return &GoogleSTTClient{
		cfg:      cfg,
		endpoint: defaultSTTEndpoint,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

type sttRequest struct {
	Config struct {
		Encoding        string `json:"encoding"`
		SampleRateHertz int    `json:"sampleRateHertz"`
		LanguageCode    string `json:"languageCode"`
	} `json:"config"`
	Audio struct {
		Content string `json:"content"`
	} `json:"audio"`
}

type sttResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Recognize transcribes raw audio bytes. A successful call with no
// result or alternative yields ErrNoTranscription.
func (c *GoogleSTTClient) Recognize(ctx context.Context, audio []byte) (string, error) {
	var payload sttRequest
	payload.Config.Encoding = sttEncoding
	payload.Config.SampleRateHertz = sttSampleRate
	payload.Config.LanguageCode = c.cfg.LanguageCode
	payload.Audio.Content = base64.StdEncoding.EncodeToString(audio)

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding STT request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building STT request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("STT request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading STT response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{Provider: "google-stt", Status: resp.StatusCode, Body: string(respBody)}
	}

	var decoded sttResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("decoding STT response: %w", err)
	}

	if len(decoded.Results) == 0 || len(decoded.Results[0].Alternatives) == 0 {
		return "", ErrNoTranscription
	}

	return decoded.Results[0].Alternatives[0].Transcript, nil
}
