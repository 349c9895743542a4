// Package handle is the HTTP façade: it parses one inbound submission,
// normalizes and composes it, issues the single upstream call and relays the
// result. Each request is independent; nothing is shared between them.
package handle

import (
	"encoding/json"
	"net/http"

	"essay-proxy/api/internal/config"
	"essay-proxy/api/internal/engine/claude"
)

type Handle struct {
	claude *claude.Engine
	cfg    *config.Config
}

func New(c *claude.Engine, cfg *config.Config) *Handle {
	return &Handle{
		claude: c,
		cfg:    cfg,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorBody{Error: msg})
}

// setCORS goes on every response, error and preflight paths included; the
// browser frontend is served from a different origin.
func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
