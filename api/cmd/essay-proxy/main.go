package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"essay-proxy/api/internal/config"
	"essay-proxy/api/internal/engine/claude"
	"essay-proxy/api/internal/handle"
)

func main() {
	cfg := config.Load()

	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Port = p
	} else if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = "8000"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	h := handle.New(claude.New(cfg.AnthropicAPIKey, cfg.ClaudeModel, cfg.AnthropicBaseURL), cfg)
	mux.HandleFunc("/", h.Correct)

	addr := ":" + cfg.Port
	log.Printf("essay-proxy listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
