package speech

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/echolingo/echolingo/backend/internal/config"
)

var (
	ErrEmptyText       = errors.New("text is required")
	ErrNoAudio         = errors.New("audio payload is required")
	ErrNoTranscription = errors.New("could not transcribe audio")
)

// UpstreamError carries a speech provider's non-2xx status and body so
// handlers can propagate them to the client.
type UpstreamError struct {
	Provider string
	Status   int
	Body     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.Status, e.Body)
}

// ResponseStatus maps the provider status onto the relayed response:
// passed through when it is a valid error status, 502 otherwise.
func (e *UpstreamError) ResponseStatus() int {
	if e.Status >= 400 && e.Status <= 599 {
		return e.Status
	}
	return http.StatusBadGateway
}

// Service fronts the Google Cloud speech REST endpoints.
type Service struct {
	tts          *GoogleTTSClient
	stt          *GoogleSTTClient
	defaultVoice string
}

// NewService creates the speech service from configuration.
func NewService(cfg config.SpeechConfig) *Service {
	return &Service{
		tts:          NewGoogleTTSClient(cfg),
		stt:          NewGoogleSTTClient(cfg),
		defaultVoice: cfg.Voice,
	}
}

// Synthesize converts text to speech and returns the provider's
// base64-encoded audio payload unmodified.
func (s *Service) Synthesize(ctx context.Context, text, voice string) (string, error) {
	if text == "" {
		return "", ErrEmptyText
	}
	if voice == "" {
		voice = s.defaultVoice
	}
	return s.tts.Synthesize(ctx, text, voice)
}

// Transcribe converts an uploaded audio payload to text.
func (s *Service) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", ErrNoAudio
	}
	return s.stt.Recognize(ctx, audio)
}
