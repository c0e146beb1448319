package dictionary

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/echolingo/echolingo/backend/internal/model/dictionary"
	"github.com/echolingo/echolingo/backend/internal/service/ai"
)

var (
	ErrEmptyWord    = errors.New("word is required")
	ErrWordNotFound = errors.New("word not found")
)

// WordAssistant is the slice of the LLM service the dictionary
// orchestrator needs.
type WordAssistant interface {
	ExplainWord(ctx context.Context, word string) (ai.WordEnhancement, error)
	FallbackLookup(ctx context.Context, word string) (ai.WordFallback, error)
}

// Service merges dictionary lookups with LLM enrichment, falling back to
// an LLM-only entry when the dictionary upstream is unavailable.
type Service struct {
	client    *Client
	assistant WordAssistant
}

// NewService wires the orchestrator to the dictionary client and model.
func NewService(client *Client, assistant WordAssistant) *Service {
	return &Service{client: client, assistant: assistant}
}

// Lookup resolves a word into an aggregated entry. On dictionary success
// only the first record is used and the model adds an explanation plus
// example sentences; on any non-success status the whole entry is
// synthesized by the model instead.
func (s *Service) Lookup(ctx context.Context, word string) (dictionary.WordEntry, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return dictionary.WordEntry{}, ErrEmptyWord
	}

	entries, status, err := s.client.Entries(ctx, word)
	if err != nil {
		return dictionary.WordEntry{}, err
	}

	if status != http.StatusOK || len(entries) == 0 {
		log.Printf("[dictionary] upstream status %d for %q, using LLM fallback", status, word)
		return s.fallbackLookup(ctx, word)
	}

	entry := entries[0]
	enhancement, err := s.assistant.ExplainWord(ctx, word)
	if err != nil {
		return dictionary.WordEntry{}, err
	}

	return dictionary.WordEntry{
		Word:        entry.Word,
		Phonetics:   entry.Phonetics,
		Meanings:    entry.Meanings,
		Explanation: enhancement.Explanation,
		Examples:    enhancement.Examples,
	}, nil
}

func (s *Service) fallbackLookup(ctx context.Context, word string) (dictionary.WordEntry, error) {
	fallback, err := s.assistant.FallbackLookup(ctx, word)
	if err != nil {
		return dictionary.WordEntry{}, err
	}

	return dictionary.WordEntry{
		Word:          word,
		LLMGenerated:  true,
		Definition:    fallback.Definition,
		Pronunciation: fallback.Pronunciation,
		PartOfSpeech:  fallback.PartOfSpeech,
		Examples:      fallback.Examples,
	}, nil
}

// Pronunciation scans a word's phonetics for audio and IPA text. The two
// scans are independent and may pick different variants; a missing value
// yields an empty string, not an error.
func (s *Service) Pronunciation(ctx context.Context, word string) (dictionary.Pronunciation, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return dictionary.Pronunciation{}, ErrEmptyWord
	}

	entries, status, err := s.client.Entries(ctx, word)
	if err != nil {
		return dictionary.Pronunciation{}, err
	}
	if status != http.StatusOK || len(entries) == 0 {
		return dictionary.Pronunciation{}, ErrWordNotFound
	}

	entry := entries[0]
	result := dictionary.Pronunciation{Word: entry.Word}

	for _, phonetic := range entry.Phonetics {
		if phonetic.Audio != "" {
			result.AudioURL = phonetic.Audio
			break
		}
	}
	for _, phonetic := range entry.Phonetics {
		if phonetic.Text != "" {
			result.IPA = phonetic.Text
			break
		}
	}

	return result, nil
}
