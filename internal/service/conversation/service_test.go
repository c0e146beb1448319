package conversation_test

import (
	"context"
	"errors"
	"testing"

	modelchat "github.com/echolingo/echolingo/backend/internal/model/chat"
	chatservice "github.com/echolingo/echolingo/backend/internal/service/chat"
	"github.com/echolingo/echolingo/backend/internal/service/conversation"
)

type fakeModel struct {
	replyCalls    int
	followUpCalls int
	replyTurns    []modelchat.Turn
	followUpTurns []modelchat.Turn
	replyErr      error
	followUpErr   error
}

func (f *fakeModel) Reply(_ context.Context, turns []modelchat.Turn) (string, error) {
	f.replyCalls++
	f.replyTurns = turns
	if f.replyErr != nil {
		return "", f.replyErr
	}
	return "sure, let's talk", nil
}

func (f *fakeModel) FollowUps(_ context.Context, turns []modelchat.Turn) (string, error) {
	f.followUpCalls++
	f.followUpTurns = turns
	if f.followUpErr != nil {
		return "", f.followUpErr
	}
	return "What do you do?, Tell me about your day", nil
}

func newService(llm *fakeModel) *conversation.Service {
	return conversation.NewService(chatservice.NewStore("tutor persona"), llm)
}

func TestSendMessageEmptyInput(t *testing.T) {
	llm := &fakeModel{}
	svc := newService(llm)

	if _, err := svc.SendMessage(context.Background(), "", "   "); err != conversation.ErrEmptyMessage {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if llm.replyCalls != 0 || llm.followUpCalls != 0 {
		t.Fatal("model must not be called on empty input")
	}
}

func TestSendMessageRoundTrip(t *testing.T) {
	llm := &fakeModel{}
	svc := newService(llm)
	ctx := context.Background()

	exchange, err := svc.SendMessage(ctx, "", "hello!")
	if err != nil {
		t.Fatalf("SendMessage err: %v", err)
	}
	if exchange.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if exchange.Reply != "sure, let's talk" {
		t.Fatalf("unexpected reply: %q", exchange.Reply)
	}
	if exchange.FollowUps == "" {
		t.Fatal("expected follow-ups")
	}

	history, err := svc.History(ctx, exchange.SessionID)
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 turns in history, got %d", len(history))
	}
	if history[0].Role != modelchat.RoleUser || history[0].Content != "hello!" {
		t.Fatalf("unexpected first turn: %+v", history[0])
	}
	if history[1].Role != modelchat.RoleAssistant || history[1].Content != "sure, let's talk" {
		t.Fatalf("unexpected second turn: %+v", history[1])
	}
}

func TestSendMessageReplaysFullContext(t *testing.T) {
	llm := &fakeModel{}
	svc := newService(llm)
	ctx := context.Background()

	first, err := svc.SendMessage(ctx, "", "hi")
	if err != nil {
		t.Fatalf("SendMessage err: %v", err)
	}
	if _, err := svc.SendMessage(ctx, first.SessionID, "how are you?"); err != nil {
		t.Fatalf("second SendMessage err: %v", err)
	}

	// system + user + assistant + user
	if len(llm.replyTurns) != 4 {
		t.Fatalf("expected 4 turns of context, got %d", len(llm.replyTurns))
	}
	if llm.replyTurns[0].Role != modelchat.RoleSystem {
		t.Fatal("context must start with the system turn")
	}
	// follow-up context includes the freshly generated reply
	lastTurn := llm.followUpTurns[len(llm.followUpTurns)-1]
	if lastTurn.Role != modelchat.RoleAssistant {
		t.Fatalf("follow-up context must end with the assistant reply, got %+v", lastTurn)
	}
}

func TestSendMessageReplyFailure(t *testing.T) {
	llm := &fakeModel{replyErr: errors.New("upstream 500")}
	svc := newService(llm)

	if _, err := svc.SendMessage(context.Background(), "", "hi"); err == nil {
		t.Fatal("expected error when reply fails")
	}
	if llm.followUpCalls != 0 {
		t.Fatal("follow-ups must not be requested after a failed reply")
	}
}

func TestSendMessageFollowUpFailure(t *testing.T) {
	llm := &fakeModel{followUpErr: errors.New("upstream 500")}
	svc := newService(llm)

	if _, err := svc.SendMessage(context.Background(), "", "hi"); err == nil {
		t.Fatal("expected error when follow-up generation fails")
	}
}
