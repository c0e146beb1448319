package dictionary

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/echolingo/echolingo/backend/internal/model/dictionary"
	dictionaryservice "github.com/echolingo/echolingo/backend/internal/service/dictionary"
	"github.com/echolingo/echolingo/backend/pkg/utils"
)

// Dictionary abstracts the orchestrator for testing.
type Dictionary interface {
	Lookup(ctx context.Context, word string) (dictionary.WordEntry, error)
	Pronunciation(ctx context.Context, word string) (dictionary.Pronunciation, error)
}

// Handler serves the dictionary endpoints.
type Handler struct {
	dictionary Dictionary
}

// New creates the dictionary handler.
func New(dict Dictionary) *Handler {
	return &Handler{dictionary: dict}
}

// RegisterRoutes mounts the dictionary routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dictionary", func(dictRouter chi.Router) {
		dictRouter.Get("/lookup", h.handleLookup)
		dictRouter.Get("/pronunciation", h.handlePronunciation)
	})
}

func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")

	entry, err := h.dictionary.Lookup(r.Context(), word)
	if err != nil {
		if errors.Is(err, dictionaryservice.ErrEmptyWord) {
			utils.RespondError(w, http.StatusBadRequest, "Word is required")
			return
		}
		log.Printf("[dictionary] lookup failed: %v", err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Error processing your request", err.Error())
		return
	}

	if entry.LLMGenerated {
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":         true,
			"word":            entry.Word,
			"openaiGenerated": true,
			"definition":      entry.Definition,
			"pronunciation":   entry.Pronunciation,
			"partOfSpeech":    entry.PartOfSpeech,
			"examples":        entry.Examples,
		})
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"word":        entry.Word,
		"phonetics":   entry.Phonetics,
		"meanings":    entry.Meanings,
		"explanation": entry.Explanation,
		"examples":    entry.Examples,
	})
}

func (h *Handler) handlePronunciation(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")

	pron, err := h.dictionary.Pronunciation(r.Context(), word)
	if err != nil {
		switch {
		case errors.Is(err, dictionaryservice.ErrEmptyWord):
			utils.RespondError(w, http.StatusBadRequest, "Word is required")
		case errors.Is(err, dictionaryservice.ErrWordNotFound):
			utils.RespondError(w, http.StatusNotFound, "Word not found")
		default:
			log.Printf("[dictionary] pronunciation failed: %v", err)
			utils.RespondErrorDetail(w, http.StatusInternalServerError, "Error processing your request", err.Error())
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"word":     pron.Word,
		"ipa":      pron.IPA,
		"audioUrl": pron.AudioURL,
	})
}
