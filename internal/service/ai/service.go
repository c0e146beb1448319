package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/echolingo/echolingo/backend/internal/config"
	"github.com/echolingo/echolingo/backend/internal/model/chat"
)

// historyLimit caps the non-system turns replayed to the model per
// request. The store keeps the full transcript; only the model context is
// windowed.
const historyLimit = 30

// followUpContextTurns is how much conversation tail the follow-up
// generator sees.
const followUpContextTurns = 4

// Service wraps the configured chat model with the prompts this product
// needs: tutor replies, follow-up suggestions and dictionary assists.
type Service struct {
	chatModel model.BaseChatModel
	cfg       config.AIConfig
}

// NewService creates the LLM service for the configured provider.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return &Service{chatModel: chatModel, cfg: cfg}, nil
}

// Reply generates the tutor's answer from the accumulated turn sequence.
func (s *Service) Reply(ctx context.Context, turns []chat.Turn) (string, error) {
	response, err := s.chatModel.Generate(ctx, buildMessages(turns))
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	log.Printf("[ai] generated reply, length=%d", len(response.Content))
	return response.Content, nil
}

// FollowUps asks the utility model for 2-3 comma-separated follow-up
// prompts, seeing only the tail of the conversation. The result is
// returned raw and is not stored in the session.
func (s *Service) FollowUps(ctx context.Context, turns []chat.Turn) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(followUpSystemPrompt),
		schema.UserMessage("Previous conversation:\n" + renderTranscript(tail(turns, followUpContextTurns))),
	}

	response, err := s.chatModel.Generate(ctx, messages,
		model.WithModel(s.cfg.UtilityModel), model.WithMaxTokens(100))
	if err != nil {
		return "", fmt.Errorf("follow-up completion failed: %w", err)
	}

	return response.Content, nil
}

// ExplainWord asks the utility model for a plain-language explanation of
// word plus two example sentences. A malformed model response degrades
// into a raw-text explanation rather than an error.
func (s *Service) ExplainWord(ctx context.Context, word string) (WordEnhancement, error) {
	messages := []*schema.Message{
		schema.SystemMessage(teachingAssistantPrompt),
		schema.UserMessage(explainWordPrompt(word)),
	}

	response, err := s.chatModel.Generate(ctx, messages,
		model.WithModel(s.cfg.UtilityModel), model.WithMaxTokens(200))
	if err != nil {
		return WordEnhancement{}, fmt.Errorf("word explanation failed: %w", err)
	}

	return parseEnhancement(response.Content), nil
}

// FallbackLookup synthesizes a full dictionary entry from the model alone,
// used when the dictionary upstream is unavailable. Same degradation rule
// as ExplainWord.
func (s *Service) FallbackLookup(ctx context.Context, word string) (WordFallback, error) {
	messages := []*schema.Message{
		schema.SystemMessage(teachingAssistantPrompt),
		schema.UserMessage(fallbackLookupPrompt(word)),
	}

	response, err := s.chatModel.Generate(ctx, messages,
		model.WithModel(s.cfg.UtilityModel), model.WithMaxTokens(300))
	if err != nil {
		return WordFallback{}, fmt.Errorf("fallback lookup failed: %w", err)
	}

	return parseFallback(response.Content), nil
}

// buildMessages converts stored turns into model messages. System turns
// are always kept; the rest is windowed to historyLimit.
func buildMessages(turns []chat.Turn) []*schema.Message {
	var system []*schema.Message
	var rest []chat.Turn
	for _, turn := range turns {
		if turn.Role == chat.RoleSystem {
			system = append(system, schema.SystemMessage(turn.Content))
			continue
		}
		rest = append(rest, turn)
	}

	if len(rest) > historyLimit {
		rest = rest[len(rest)-historyLimit:]
	}

	messages := system
	for _, turn := range rest {
		switch turn.Role {
		case chat.RoleUser:
			messages = append(messages, schema.UserMessage(turn.Content))
		case chat.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(turn.Content, nil))
		}
	}
	return messages
}

func tail(turns []chat.Turn, n int) []chat.Turn {
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}

func renderTranscript(turns []chat.Turn) string {
	var builder strings.Builder
	for _, turn := range turns {
		builder.WriteString(turn.Role)
		builder.WriteString(": ")
		builder.WriteString(turn.Content)
		builder.WriteString("\n")
	}
	return builder.String()
}
