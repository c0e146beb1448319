package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/echolingo/echolingo/backend/internal/model/chat"
	chatservice "github.com/echolingo/echolingo/backend/internal/service/chat"
	conversationservice "github.com/echolingo/echolingo/backend/internal/service/conversation"
	"github.com/echolingo/echolingo/backend/pkg/utils"
)

// Conversations abstracts the orchestrator for testing.
type Conversations interface {
	SendMessage(ctx context.Context, sessionID, message string) (conversationservice.Exchange, error)
	History(ctx context.Context, sessionID string) ([]chat.Turn, error)
}

// Handler serves the conversation endpoints.
type Handler struct {
	conversations Conversations
}

// New creates the conversation handler.
func New(conversations Conversations) *Handler {
	return &Handler{conversations: conversations}
}

// RegisterRoutes mounts the conversation routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/conversation", h.handleSendMessage)
	r.Get("/conversation/history", h.handleHistory)
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message        string `json:"message"`
		UserID         string `json:"userId"`
		ConversationID string `json:"conversationId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	exchange, err := h.conversations.SendMessage(r.Context(), payload.ConversationID, payload.Message)
	if err != nil {
		if errors.Is(err, conversationservice.ErrEmptyMessage) {
			utils.RespondError(w, http.StatusBadRequest, "Message is required")
			return
		}
		log.Printf("[conversation] send message failed: %v", err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Error processing your request", err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"conversationId":     exchange.SessionID,
		"response":           exchange.Reply,
		"suggestedFollowUps": exchange.FollowUps,
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	conversationID := r.URL.Query().Get("conversationId")

	history, err := h.conversations.History(r.Context(), conversationID)
	if err != nil {
		if errors.Is(err, chatservice.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		log.Printf("[conversation] history failed: %v", err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Error processing your request", err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"history": history,
	})
}
