package dictionary_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/echolingo/echolingo/backend/internal/service/ai"
	dictionaryservice "github.com/echolingo/echolingo/backend/internal/service/dictionary"
)

type fakeAssistant struct {
	explainCalls  int
	fallbackCalls int
	enhancement   ai.WordEnhancement
	fallback      ai.WordFallback
	err           error
}

func (f *fakeAssistant) ExplainWord(_ context.Context, word string) (ai.WordEnhancement, error) {
	f.explainCalls++
	return f.enhancement, f.err
}

func (f *fakeAssistant) FallbackLookup(_ context.Context, word string) (ai.WordFallback, error) {
	f.fallbackCalls++
	return f.fallback, f.err
}

const helloEntry = `[{
	"word": "hello",
	"phonetics": [{"text": "", "audio": "https://example.com/a.mp3"}, {"text": "/hə'loʊ/", "audio": ""}],
	"meanings": [{"partOfSpeech": "noun", "definitions": [{"definition": "a greeting"}]}]
}]`

func newDictServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if body != "" {
			w.Write([]byte(body))
		}
	}))
}

func newService(baseURL string, assistant *fakeAssistant) *dictionaryservice.Service {
	client := dictionaryservice.NewClient(baseURL, 2*time.Second)
	return dictionaryservice.NewService(client, assistant)
}

func TestLookupEmptyWord(t *testing.T) {
	assistant := &fakeAssistant{}
	svc := newService("http://localhost:0", assistant)

	if _, err := svc.Lookup(context.Background(), "  "); err != dictionaryservice.ErrEmptyWord {
		t.Fatalf("expected ErrEmptyWord, got %v", err)
	}
	if assistant.explainCalls != 0 || assistant.fallbackCalls != 0 {
		t.Fatal("assistant must not be called on empty input")
	}
}

func TestLookupMergesDictionaryAndLLM(t *testing.T) {
	server := newDictServer(t, http.StatusOK, helloEntry)
	defer server.Close()

	assistant := &fakeAssistant{enhancement: ai.WordEnhancement{
		Explanation: "a common greeting",
		Examples:    []string{"Hello there.", "She waved hello."},
	}}
	svc := newService(server.URL, assistant)

	entry, err := svc.Lookup(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Lookup err: %v", err)
	}
	if entry.Word != "hello" {
		t.Fatalf("unexpected word: %q", entry.Word)
	}
	if len(entry.Meanings) == 0 || len(entry.Phonetics) != 2 {
		t.Fatalf("dictionary data not merged: %+v", entry)
	}
	if entry.Explanation != "a common greeting" || len(entry.Examples) != 2 {
		t.Fatalf("LLM data not merged: %+v", entry)
	}
	if entry.LLMGenerated {
		t.Fatal("entry must not be flagged LLM-generated on dictionary success")
	}
	if assistant.fallbackCalls != 0 {
		t.Fatal("fallback must not run on dictionary success")
	}
}

func TestLookupFallsBackOnUpstreamFailure(t *testing.T) {
	server := newDictServer(t, http.StatusNotFound, "")
	defer server.Close()

	assistant := &fakeAssistant{fallback: ai.WordFallback{
		Definition:    "a made-up word",
		Pronunciation: "/zɪg/",
		PartOfSpeech:  "noun",
		Examples:      []string{"That's a zig."},
	}}
	svc := newService(server.URL, assistant)

	entry, err := svc.Lookup(context.Background(), "zig")
	if err != nil {
		t.Fatalf("Lookup err: %v", err)
	}
	if !entry.LLMGenerated {
		t.Fatal("fallback entry must be flagged LLM-generated")
	}
	if entry.Definition != "a made-up word" || entry.PartOfSpeech != "noun" {
		t.Fatalf("fallback payload not carried: %+v", entry)
	}
	if assistant.explainCalls != 0 {
		t.Fatal("explanation must not run on fallback path")
	}
}

func TestLookupAssistantFailure(t *testing.T) {
	server := newDictServer(t, http.StatusOK, helloEntry)
	defer server.Close()

	assistant := &fakeAssistant{err: errors.New("llm down")}
	svc := newService(server.URL, assistant)

	if _, err := svc.Lookup(context.Background(), "hello"); err == nil {
		t.Fatal("expected error when the assistant fails")
	}
}

func TestPronunciationScansIndependently(t *testing.T) {
	server := newDictServer(t, http.StatusOK, helloEntry)
	defer server.Close()

	svc := newService(server.URL, &fakeAssistant{})

	pron, err := svc.Pronunciation(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Pronunciation err: %v", err)
	}
	if pron.AudioURL != "https://example.com/a.mp3" {
		t.Fatalf("unexpected audio url: %q", pron.AudioURL)
	}
	if pron.IPA != "/hə'loʊ/" {
		t.Fatalf("unexpected ipa: %q", pron.IPA)
	}
}

func TestPronunciationNotFound(t *testing.T) {
	server := newDictServer(t, http.StatusNotFound, "")
	defer server.Close()

	svc := newService(server.URL, &fakeAssistant{})

	if _, err := svc.Pronunciation(context.Background(), "nope"); err != dictionaryservice.ErrWordNotFound {
		t.Fatalf("expected ErrWordNotFound, got %v", err)
	}
}

func TestPronunciationEmptyFieldsAllowed(t *testing.T) {
	server := newDictServer(t, http.StatusOK, `[{"word":"hm","phonetics":[],"meanings":[]}]`)
	defer server.Close()

	svc := newService(server.URL, &fakeAssistant{})

	pron, err := svc.Pronunciation(context.Background(), "hm")
	if err != nil {
		t.Fatalf("Pronunciation err: %v", err)
	}
	if pron.IPA != "" || pron.AudioURL != "" {
		t.Fatalf("expected empty fields, got %+v", pron)
	}
}
