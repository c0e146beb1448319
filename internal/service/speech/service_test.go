package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/echolingo/echolingo/backend/internal/config"
)

func testConfig() config.SpeechConfig {
	return config.SpeechConfig{
		APIKey:       "test-key",
		ProjectID:    "test-project",
		Voice:        "en-US-Standard-B",
		LanguageCode: "en-US",
		Timeout:      5,
		Enabled:      true,
	}
}

func TestSynthesizeEmptyTextShortCircuits(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	svc := NewService(testConfig())
	svc.tts.endpoint = server.URL

	if _, err := svc.Synthesize(context.Background(), "", ""); err != ErrEmptyText {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if calls != 0 {
		t.Fatal("no outbound call expected for empty text")
	}
}

func TestSynthesizeReturnsAudioContent(t *testing.T) {
	var gotBody ttsRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}
		if got := r.Header.Get("x-goog-user-project"); got != "test-project" {
			t.Errorf("unexpected project header: %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"audioContent": "bW9jaw=="})
	}))
	defer server.Close()

	svc := NewService(testConfig())
	svc.tts.endpoint = server.URL

	audio, err := svc.Synthesize(context.Background(), "hello world", "")
	if err != nil {
		t.Fatalf("Synthesize err: %v", err)
	}
	if audio != "bW9jaw==" {
		t.Fatalf("audio payload must pass through unmodified, got %q", audio)
	}
	if gotBody.Input.Text != "hello world" {
		t.Fatalf("unexpected text: %q", gotBody.Input.Text)
	}
	if gotBody.Voice.Name != "en-US-Standard-B" {
		t.Fatalf("default voice not applied: %q", gotBody.Voice.Name)
	}
	if gotBody.AudioConfig.AudioEncoding != "MP3" {
		t.Fatalf("unexpected encoding: %q", gotBody.AudioConfig.AudioEncoding)
	}
}

func TestSynthesizeUpstreamFailureCarriesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"permission denied"}`))
	}))
	defer server.Close()

	svc := NewService(testConfig())
	svc.tts.endpoint = server.URL

	audio, err := svc.Synthesize(context.Background(), "hello", "")
	if audio != "" {
		t.Fatalf("no partial audio expected, got %q", audio)
	}

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstreamErr.Status != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", upstreamErr.Status)
	}
	if upstreamErr.Body == "" {
		t.Fatal("expected upstream body to be carried")
	}
}

func TestTranscribeEmptyAudioShortCircuits(t *testing.T) {
	svc := NewService(testConfig())
	if _, err := svc.Transcribe(context.Background(), nil); err != ErrNoAudio {
		t.Fatalf("expected ErrNoAudio, got %v", err)
	}
}

func TestTranscribeDecodesFirstAlternative(t *testing.T) {
	var gotBody sttRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"results":[{"alternatives":[{"transcript":"hello world","confidence":0.95},{"transcript":"yellow world"}]}]}`))
	}))
	defer server.Close()

	svc := NewService(testConfig())
	svc.stt.endpoint = server.URL

	text, err := svc.Transcribe(context.Background(), []byte("fake-audio"))
	if err != nil {
		t.Fatalf("Transcribe err: %v", err)
	}
	if text != "hello world" {
		t.Fatalf("unexpected transcript: %q", text)
	}

	if gotBody.Config.Encoding != "WEBM_OPUS" || gotBody.Config.SampleRateHertz != 48000 {
		t.Fatalf("unexpected recognition config: %+v", gotBody.Config)
	}
	decoded, err := base64.StdEncoding.DecodeString(gotBody.Audio.Content)
	if err != nil || string(decoded) != "fake-audio" {
		t.Fatalf("audio not base64-encoded correctly: %v %q", err, decoded)
	}
}

func TestTranscribeNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	svc := NewService(testConfig())
	svc.stt.endpoint = server.URL

	if _, err := svc.Transcribe(context.Background(), []byte("audio")); err != ErrNoTranscription {
		t.Fatalf("expected ErrNoTranscription, got %v", err)
	}
}

func TestTranscribeUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad encoding"))
	}))
	defer server.Close()

	svc := NewService(testConfig())
	svc.stt.endpoint = server.URL

	_, err := svc.Transcribe(context.Background(), []byte("audio"))
	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstreamErr.Status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", upstreamErr.Status)
	}
}

func TestUpstreamErrorResponseStatus(t *testing.T) {
	if got := (&UpstreamError{Status: 429}).ResponseStatus(); got != 429 {
		t.Fatalf("expected 429, got %d", got)
	}
	if got := (&UpstreamError{Status: 301}).ResponseStatus(); got != http.StatusBadGateway {
		t.Fatalf("expected 502 for non-error status, got %d", got)
	}
}
