package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every setting the service reads from the environment.
type Config struct {
	Server     ServerConfig
	AI         AIConfig
	Speech     SpeechConfig
	Dictionary DictionaryConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	speech, err := loadSpeechConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:     server,
		AI:         ai,
		Speech:     speech,
		Dictionary: loadDictionaryConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr       string
	CORSOrigin string
	SecretKey  string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "5000"
	}

	addr := port
	if !strings.Contains(port, ":") {
		if strings.Contains(port, " ") {
			return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
		}
		addr = ":" + port
	}

	return ServerConfig{
		Addr:       addr,
		CORSOrigin: getEnvOrDefault("CORS_ORIGIN", "http://localhost:3000"),
		SecretKey:  getEnvOrDefault("SECRET_KEY", "dev-secret-key"),
	}, nil
}

// AIConfig describes the LLM provider. OpenAI is the default; Ark is
// selected when ARK_API_KEY and ARK_MODEL are present, for deployments
// inside the Volcengine ecosystem.
type AIConfig struct {
	APIKey       string
	BaseURL      string
	ChatModel    string
	UtilityModel string
	Temperature  *float64
	MaxTokens    *int

	ArkAPIKey  string
	ArkModel   string
	ArkBaseURL string
	ArkRegion  string
}

// Enabled reports whether credentials for at least one provider are set.
func (c AIConfig) Enabled() bool {
	return c.APIKey != "" || (c.ArkAPIKey != "" && c.ArkModel != "")
}

// NewChatModel builds a chat model instance for the configured provider.
func (c AIConfig) NewChatModel(ctx context.Context) (model.BaseChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("LLM credentials missing: provide OPENAI_API_KEY or ARK_API_KEY + ARK_MODEL")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	if c.ArkAPIKey != "" && c.ArkModel != "" {
		return ark.NewChatModel(ctx, &ark.ChatModelConfig{
			BaseURL:     c.ArkBaseURL,
			Region:      c.ArkRegion,
			APIKey:      c.ArkAPIKey,
			Model:       c.ArkModel,
			MaxTokens:   maxTokens,
			Temperature: temperature,
		})
	}

	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     c.BaseURL,
		APIKey:      c.APIKey,
		Model:       c.ChatModel,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("OPENAI_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("OPENAI_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:       strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		BaseURL:      strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		ChatModel:    getEnvOrDefault("OPENAI_CHAT_MODEL", "gpt-4"),
		UtilityModel: getEnvOrDefault("OPENAI_UTILITY_MODEL", "gpt-3.5-turbo"),
		Temperature:  temperature,
		MaxTokens:    maxTokens,
		ArkAPIKey:    strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		ArkModel:     strings.TrimSpace(os.Getenv("ARK_MODEL")),
		ArkBaseURL:   getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		ArkRegion:    getEnvOrDefault("ARK_REGION", "cn-beijing"),
	}, nil
}

// SpeechConfig describes the Google Cloud speech endpoints.
type SpeechConfig struct {
	APIKey       string
	ProjectID    string
	Voice        string
	LanguageCode string
	Timeout      int
	Enabled      bool
}

func loadSpeechConfig() (SpeechConfig, error) {
	timeout, err := parseOptionalIntEnv("SPEECH_TIMEOUT")
	if err != nil {
		return SpeechConfig{}, err
	}
	timeoutSeconds := 30
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	apiKey := strings.TrimSpace(os.Getenv("SPEECH_API_KEY"))

	return SpeechConfig{
		APIKey:       apiKey,
		ProjectID:    strings.TrimSpace(os.Getenv("PROJECT_ID")),
		Voice:        getEnvOrDefault("SPEECH_TTS_VOICE", "en-US-Standard-B"),
		LanguageCode: getEnvOrDefault("SPEECH_LANGUAGE", "en-US"),
		Timeout:      timeoutSeconds,
		Enabled:      apiKey != "",
	}, nil
}

// DictionaryConfig describes the Free Dictionary API client. The base URL
// is overridable mainly for tests.
type DictionaryConfig struct {
	BaseURL string
	Timeout int
}

func loadDictionaryConfig() DictionaryConfig {
	timeoutSeconds := 15
	if raw := strings.TrimSpace(os.Getenv("DICTIONARY_TIMEOUT")); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 {
			timeoutSeconds = val
		}
	}

	return DictionaryConfig{
		BaseURL: getEnvOrDefault("DICTIONARY_BASE_URL", "https://api.dictionaryapi.dev/api/v2/entries/en"),
		Timeout: timeoutSeconds,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
