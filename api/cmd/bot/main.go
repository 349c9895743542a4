package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"essay-proxy/api/internal/config"
	"essay-proxy/api/internal/engine"
	"essay-proxy/api/internal/engine/claude"
	"essay-proxy/api/internal/engine/gemini"
	"essay-proxy/api/internal/store"
	"essay-proxy/api/internal/telegram"
)

func main() {
	cfg := config.Load()

	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Port = p
	} else if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = "8080"
	}

	if cfg.TelegramBotToken == "" {
		log.Fatal("missing required env TELEGRAM_BOT_TOKEN")
	}

	// Correction cache is optional; without a DSN the bot just calls the
	// engine every time.
	var corrections *store.CorrectionRepo
	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("sql.Open: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(1 * time.Hour)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("db.Ping: %v", err)
		}
		log.Printf("db connected, correction cache enabled")
		corrections = store.NewCorrectionRepo(db)
	} else {
		log.Printf("DATABASE_URL not set, correction cache disabled")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal(err)
	}
	bot.Debug = false

	engines := telegram.Engines{
		Claude: claude.New(cfg.AnthropicAPIKey, cfg.ClaudeModel, cfg.AnthropicBaseURL),
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
	}

	r := &telegram.Router{
		Bot:          bot,
		EngManager:   engine.NewManager(engines.Claude),
		Corrections:  corrections,
		MaxTokens:    cfg.MaxTokens,
		OCRMaxTokens: cfg.OCRMaxTokens,
	}

	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		addr := "0.0.0.0:" + cfg.Port
		log.Printf("bot healthz listening on %s", addr)
		log.Fatal(http.ListenAndServe(addr, mux))
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := bot.GetUpdatesChan(u)

	log.Printf("bot %s polling for updates", bot.Self.UserName)
	for upd := range updates {
		r.HandleUpdate(upd, engines)
	}
}
