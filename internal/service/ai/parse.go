package ai

import (
	"encoding/json"
	"strings"
)

// WordEnhancement is the structured payload requested from the model to
// enrich a successful dictionary lookup.
type WordEnhancement struct {
	Explanation string   `json:"explanation"`
	Examples    []string `json:"examples"`
}

// WordFallback is the structured payload requested from the model when
// the dictionary upstream fails.
type WordFallback struct {
	Definition    string   `json:"definition"`
	Pronunciation string   `json:"pronunciation"`
	PartOfSpeech  string   `json:"partOfSpeech"`
	Examples      []string `json:"examples"`
}

// parseEnhancement decodes the model's JSON output. On parse failure the
// raw text becomes the explanation and examples stay empty.
func parseEnhancement(raw string) WordEnhancement {
	var enhancement WordEnhancement
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &enhancement); err != nil {
		return WordEnhancement{Explanation: raw, Examples: []string{}}
	}
	if enhancement.Examples == nil {
		enhancement.Examples = []string{}
	}
	return enhancement
}

// parseFallback decodes the model's JSON output. On parse failure the raw
// text becomes the definition and every other field stays empty.
func parseFallback(raw string) WordFallback {
	var fallback WordFallback
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &fallback); err != nil {
		return WordFallback{Definition: raw, Examples: []string{}}
	}
	if fallback.Examples == nil {
		fallback.Examples = []string{}
	}
	return fallback
}

// stripCodeFence removes a surrounding markdown fence, which models emit
// despite being asked for bare JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
