package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/echolingo/echolingo/backend/internal/model/chat"
	chatservice "github.com/echolingo/echolingo/backend/internal/service/chat"
)

var ErrEmptyMessage = errors.New("message is required")

// LanguageModel is the slice of the LLM service this orchestrator needs.
type LanguageModel interface {
	Reply(ctx context.Context, turns []chat.Turn) (string, error)
	FollowUps(ctx context.Context, turns []chat.Turn) (string, error)
}

// Exchange is the composed result of one conversation round-trip.
type Exchange struct {
	SessionID string
	Reply     string
	FollowUps string
}

// Service orchestrates a conversation exchange: resolve the session,
// append the user turn, generate the reply, append it, then ask for
// follow-up suggestions out-of-band.
type Service struct {
	store *chatservice.Store
	llm   LanguageModel
}

// NewService wires the orchestrator to its session store and model.
func NewService(store *chatservice.Store, llm LanguageModel) *Service {
	return &Service{store: store, llm: llm}
}

// SendMessage runs one exchange. The session lock is held for the whole
// read-generate-append sequence so concurrent requests on the same
// session cannot interleave turns.
func (s *Service) SendMessage(ctx context.Context, sessionID, message string) (Exchange, error) {
	if strings.TrimSpace(message) == "" {
		return Exchange{}, ErrEmptyMessage
	}

	id, _ := s.store.GetOrCreate(ctx, sessionID)
	unlock := s.store.LockSession(id)
	defer unlock()

	if err := s.store.Append(ctx, id, chat.Turn{Role: chat.RoleUser, Content: message}); err != nil {
		return Exchange{}, err
	}

	turns, err := s.store.Turns(ctx, id)
	if err != nil {
		return Exchange{}, err
	}

	reply, err := s.llm.Reply(ctx, turns)
	if err != nil {
		return Exchange{}, fmt.Errorf("generating reply: %w", err)
	}

	if err := s.store.Append(ctx, id, chat.Turn{Role: chat.RoleAssistant, Content: reply}); err != nil {
		return Exchange{}, err
	}

	turns = append(turns, chat.Turn{Role: chat.RoleAssistant, Content: reply})
	followUps, err := s.llm.FollowUps(ctx, turns)
	if err != nil {
		return Exchange{}, fmt.Errorf("generating follow-ups: %w", err)
	}

	return Exchange{SessionID: id, Reply: reply, FollowUps: followUps}, nil
}

// History returns the visible transcript for a session.
func (s *Service) History(ctx context.Context, sessionID string) ([]chat.Turn, error) {
	return s.store.History(ctx, sessionID)
}
