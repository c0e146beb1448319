package speech

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	speechservice "github.com/echolingo/echolingo/backend/internal/service/speech"
	"github.com/echolingo/echolingo/backend/pkg/utils"
)

// SpeechService abstracts the speech orchestrator for testing.
type SpeechService interface {
	Synthesize(ctx context.Context, text, voice string) (string, error)
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Handler serves the speech endpoints.
type Handler struct {
	speechSvc SpeechService
}

// New creates the speech handler.
func New(speechSvc SpeechService) *Handler {
	return &Handler{speechSvc: speechSvc}
}

// RegisterRoutes mounts the speech routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/speech", func(speechRouter chi.Router) {
		speechRouter.Post("/text-to-speech", h.handleTextToSpeech)
		speechRouter.Post("/speech-to-text", h.handleSpeechToText)
		speechRouter.Get("/health", h.handleHealth)
	})
}

func (h *Handler) handleTextToSpeech(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text  string `json:"text"`
		Voice string `json:"voice"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	audio, err := h.speechSvc.Synthesize(r.Context(), strings.TrimSpace(payload.Text), payload.Voice)
	if err != nil {
		if errors.Is(err, speechservice.ErrEmptyText) {
			utils.RespondError(w, http.StatusBadRequest, "Text is required")
			return
		}
		var upstreamErr *speechservice.UpstreamError
		if errors.As(err, &upstreamErr) {
			log.Printf("[speech] TTS upstream failure: %v", err)
			utils.RespondErrorDetail(w, upstreamErr.ResponseStatus(), "Error generating speech", upstreamErr.Body)
			return
		}
		log.Printf("[speech] TTS error: %v", err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Error processing your request", err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"audioContent": audio,
	})
}

func (h *Handler) handleSpeechToText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Audio file is required")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, _, err := r.FormFile("audio")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Audio file is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Failed to read audio file")
		return
	}

	text, err := h.speechSvc.Transcribe(r.Context(), audio)
	if err != nil {
		switch {
		case errors.Is(err, speechservice.ErrNoAudio):
			utils.RespondError(w, http.StatusBadRequest, "Audio file is required")
		case errors.Is(err, speechservice.ErrNoTranscription):
			utils.RespondError(w, http.StatusBadRequest, "Could not transcribe audio")
		default:
			var upstreamErr *speechservice.UpstreamError
			if errors.As(err, &upstreamErr) {
				log.Printf("[speech] STT upstream failure: %v", err)
				utils.RespondErrorDetail(w, upstreamErr.ResponseStatus(), "Error transcribing speech", upstreamErr.Body)
				return
			}
			log.Printf("[speech] STT error: %v", err)
			utils.RespondErrorDetail(w, http.StatusInternalServerError, "Error processing your request", err.Error())
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"text":    text,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "speech",
	})
}
