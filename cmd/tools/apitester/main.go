package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Manual smoke tester for a running backend instance. Exercises the
// conversation, dictionary and speech endpoints over plain HTTP so the
// full handler and middleware stack gets covered, not just the services.
func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	baseURL := flag.String("base", "http://localhost:5000", "base URL of the running backend")
	mode := flag.String("mode", "", "test mode: chat, history, lookup, pronounce, tts or stt")
	message := flag.String("message", "", "chat mode: message to send")
	session := flag.String("session", "", "chat/history mode: conversation ID, empty starts a new one")
	word := flag.String("word", "", "lookup/pronounce mode: word to query")
	text := flag.String("text", "", "tts mode: text to synthesize")
	voice := flag.String("voice", "", "tts mode: voice override")
	outputPath := flag.String("out", "", "tts mode: output audio file path (default auto-generated)")
	audioPath := flag.String("audio", "", "stt mode: input audio file path")
	timeout := flag.Duration("timeout", 45*time.Second, "request timeout")

	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := &http.Client{}

	switch *mode {
	case "chat":
		runChat(ctx, client, *baseURL, *session, *message)
	case "history":
		runHistory(ctx, client, *baseURL, *session)
	case "lookup":
		runLookup(ctx, client, *baseURL, *word)
	case "pronounce":
		runPronounce(ctx, client, *baseURL, *word)
	case "tts":
		runTTS(ctx, client, *baseURL, *text, *voice, *outputPath)
	case "stt":
		runSTT(ctx, client, *baseURL, *audioPath)
	default:
		flag.Usage()
		log.Fatal("specify a mode: chat, history, lookup, pronounce, tts or stt")
	}
}

func runChat(ctx context.Context, client *http.Client, baseURL, session, message string) {
	if strings.TrimSpace(message) == "" {
		log.Fatal("chat mode requires -message")
	}

	payload, _ := json.Marshal(map[string]string{
		"message":        message,
		"conversationId": session,
	})

	body := postJSON(ctx, client, baseURL+"/api/conversation", payload)

	var resp struct {
		Success            bool   `json:"success"`
		ConversationID     string `json:"conversationId"`
		Response           string `json:"response"`
		SuggestedFollowUps string `json:"suggestedFollowUps"`
	}
	decode(body, &resp)

	log.Printf("conversation=%s", resp.ConversationID)
	log.Printf("reply: %s", resp.Response)
	log.Printf("follow-ups: %s", resp.SuggestedFollowUps)
}

func runHistory(ctx context.Context, client *http.Client, baseURL, session string) {
	if session == "" {
		log.Fatal("history mode requires -session")
	}

	body := getJSON(ctx, client, baseURL+"/api/conversation/history?conversationId="+url.QueryEscape(session))

	var resp struct {
		Success bool `json:"success"`
		History []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"history"`
	}
	decode(body, &resp)

	for _, turn := range resp.History {
		log.Printf("%s: %s", turn.Role, turn.Content)
	}
}

func runLookup(ctx context.Context, client *http.Client, baseURL, word string) {
	if word == "" {
		log.Fatal("lookup mode requires -word")
	}

	body := getJSON(ctx, client, baseURL+"/api/dictionary/lookup?word="+url.QueryEscape(word))
	log.Printf("lookup response:\n%s", indent(body))
}

func runPronounce(ctx context.Context, client *http.Client, baseURL, word string) {
	if word == "" {
		log.Fatal("pronounce mode requires -word")
	}

	body := getJSON(ctx, client, baseURL+"/api/dictionary/pronunciation?word="+url.QueryEscape(word))

	var resp struct {
		Word     string `json:"word"`
		IPA      string `json:"ipa"`
		AudioURL string `json:"audioUrl"`
	}
	decode(body, &resp)

	log.Printf("word=%s ipa=%s audio=%s", resp.Word, resp.IPA, resp.AudioURL)
}

func runTTS(ctx context.Context, client *http.Client, baseURL, text, voice, outputPath string) {
	if strings.TrimSpace(text) == "" {
		log.Fatal("tts mode requires -text")
	}

	payload, _ := json.Marshal(map[string]string{
		"text":  text,
		"voice": voice,
	})

	body := postJSON(ctx, client, baseURL+"/api/speech/text-to-speech", payload)

	var resp struct {
		Success      bool   `json:"success"`
		AudioContent string `json:"audioContent"`
	}
	decode(body, &resp)

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		log.Fatalf("decode audio content: %v", err)
	}

	if outputPath == "" {
		outputPath = fmt.Sprintf("tts-output-%d.mp3", time.Now().Unix())
	}

	if err := os.WriteFile(outputPath, audio, 0o644); err != nil {
		log.Fatalf("write audio file: %v", err)
	}

	log.Printf("synthesized %d bytes to %s", len(audio), outputPath)
}

func runSTT(ctx context.Context, client *http.Client, baseURL, audioPath string) {
	if audioPath == "" {
		log.Fatal("stt mode requires -audio")
	}

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		log.Fatalf("read audio file: %v", err)
	}

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("audio", filepath.Base(audioPath))
	if err != nil {
		log.Fatalf("build multipart form: %v", err)
	}
	if _, err := part.Write(audio); err != nil {
		log.Fatalf("write multipart form: %v", err)
	}
	if err := writer.Close(); err != nil {
		log.Fatalf("close multipart form: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/speech/speech-to-text", buf)
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	body := do(client, req)

	var resp struct {
		Success bool   `json:"success"`
		Text    string `json:"text"`
	}
	decode(body, &resp)

	log.Printf("transcription: %s", resp.Text)
}

func postJSON(ctx context.Context, client *http.Client, target string, payload []byte) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return do(client, req)
}

func getJSON(ctx context.Context, client *http.Client, target string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	return do(client, req)
}

func do(client *http.Client, req *http.Request) []byte {
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("unexpected status %d: %s", resp.StatusCode, body)
	}
	return body
}

func decode(body []byte, out interface{}) {
	if err := json.Unmarshal(body, out); err != nil {
		log.Fatalf("decode response: %v\nraw: %s", err, body)
	}
}

func indent(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}
	return buf.String()
}
