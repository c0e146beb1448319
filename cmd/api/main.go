package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/echolingo/echolingo/backend/internal/config"
	"github.com/echolingo/echolingo/backend/internal/handler"
	"github.com/echolingo/echolingo/backend/internal/service/ai"
	chatservice "github.com/echolingo/echolingo/backend/internal/service/chat"
	conversationservice "github.com/echolingo/echolingo/backend/internal/service/conversation"
	dictionaryservice "github.com/echolingo/echolingo/backend/internal/service/dictionary"
	speechservice "github.com/echolingo/echolingo/backend/internal/service/speech"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	sessionStore := chatservice.NewStore(ai.TutorSystemPrompt)

	var convSvc *conversationservice.Service
	var dictSvc *dictionaryservice.Service
	if cfg.AI.Enabled() {
		aiSvc, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without conversation and dictionary features")
		} else {
			convSvc = conversationservice.NewService(sessionStore, aiSvc)
			dictClient := dictionaryservice.NewClient(cfg.Dictionary.BaseURL, time.Duration(cfg.Dictionary.Timeout)*time.Second)
			dictSvc = dictionaryservice.NewService(dictClient, aiSvc)
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("LLM credentials not configured, skipping conversation and dictionary features")
	}

	var speechSvc *speechservice.Service
	if cfg.Speech.Enabled {
		speechSvc = speechservice.NewService(cfg.Speech)
		log.Println("speech service initialized successfully")
	} else {
		log.Println("speech credentials not configured, skipping speech features")
	}

	router := handler.NewRouter(convSvc, dictSvc, speechSvc, cfg.Server.CORSOrigin)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("echolingo backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
