package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	conversationhandler "github.com/echolingo/echolingo/backend/internal/handler/conversation"
	dictionaryhandler "github.com/echolingo/echolingo/backend/internal/handler/dictionary"
	"github.com/echolingo/echolingo/backend/internal/handler/events"
	speechhandler "github.com/echolingo/echolingo/backend/internal/handler/speech"
	middlewarePkg "github.com/echolingo/echolingo/backend/internal/middleware"
	conversationservice "github.com/echolingo/echolingo/backend/internal/service/conversation"
	dictionaryservice "github.com/echolingo/echolingo/backend/internal/service/dictionary"
	speechservice "github.com/echolingo/echolingo/backend/internal/service/speech"
	"github.com/echolingo/echolingo/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. A nil service means its
// upstream credentials are not configured; the routes stay mounted and
// answer 503 so the frontend gets a deliberate error instead of a 404.
func NewRouter(convSvc *conversationservice.Service, dictSvc *dictionaryservice.Service, speechSvc *speechservice.Service, corsOrigin string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(corsOrigin))

	r.Route("/api", func(api chi.Router) {
		if convSvc != nil {
			conversationhandler.New(convSvc).RegisterRoutes(api)
		} else {
			api.Post("/conversation", serviceUnavailable("AI service unavailable"))
			api.Get("/conversation/history", serviceUnavailable("AI service unavailable"))
		}

		if dictSvc != nil {
			dictionaryhandler.New(dictSvc).RegisterRoutes(api)
		} else {
			api.Get("/dictionary/lookup", serviceUnavailable("dictionary service unavailable"))
			api.Get("/dictionary/pronunciation", serviceUnavailable("dictionary service unavailable"))
		}

		if speechSvc != nil {
			speechhandler.New(speechSvc).RegisterRoutes(api)
		} else {
			api.Post("/speech/text-to-speech", serviceUnavailable("speech service unavailable"))
			api.Post("/speech/speech-to-text", serviceUnavailable("speech service unavailable"))
		}
	})

	events.New(corsOrigin).RegisterRoutes(r)

	return r
}

func serviceUnavailable(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondError(w, http.StatusServiceUnavailable, message)
	}
}
