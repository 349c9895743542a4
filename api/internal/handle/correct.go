package handle

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"essay-proxy/api/internal/engine/claude"
	"essay-proxy/api/internal/prompt"
	"essay-proxy/api/internal/task"
)

// Generic caller-facing messages. Parse and upstream detail is logged only;
// validation messages are returned verbatim since they describe the caller's
// own input.
const (
	msgMalformed = "リクエストが不正です"
	msgUpstream  = "添削サービスでエラーが発生しました"
)

// Correct is the single submission endpoint. Flow: parse body → normalize →
// compose → one upstream call → stream or envelope the result. Any failure
// before the upstream call short-circuits without contacting it.
func (h *Handle) Correct(w http.ResponseWriter, r *http.Request) {
	setCORS(w)

	// Preflight is answered before any body handling.
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var p task.Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		log.Printf("correct: bad request body: %v", err)
		writeError(w, http.StatusBadRequest, msgMalformed)
		return
	}
	if p.TaskKind == "" {
		log.Printf("correct: taskKind missing")
		writeError(w, http.StatusBadRequest, msgMalformed)
		return
	}

	kind, err := task.ParseKind(p.TaskKind)
	if err != nil {
		h.validationFailed(w, err)
		return
	}
	log.Printf("correct: taskKind=%s levels=%v dialect=%q", kind, p.LevelIDs, p.Dialect)

	blocks, err := task.Normalize(kind, p, h.cfg.MaxFieldChars)
	if err != nil {
		h.validationFailed(w, err)
		return
	}

	system := prompt.Compose(kind, p.LevelIDs, p.CustomInstruction, prompt.ParseDialect(p.Dialect))

	model, maxTokens := h.cfg.ClaudeModel, h.cfg.MaxTokens
	if kind == task.KindDiagramOCR {
		// Transcription is short and mechanical; the small model is enough.
		model, maxTokens = h.cfg.ClaudeOCRModel, h.cfg.OCRMaxTokens
	}

	if streaming(kind, p) {
		h.relayStream(w, r, model, maxTokens, system, blocks)
		return
	}

	text, err := h.claude.Complete(r.Context(), model, maxTokens, system, blocks)
	if err != nil {
		h.upstreamFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"correction": text})
}

// streaming: grading kinds stream unless the caller opted out; the OCR kind
// always uses the JSON envelope.
func streaming(kind task.Kind, p task.Payload) bool {
	if kind == task.KindDiagramOCR {
		return false
	}
	return p.Stream == nil || *p.Stream
}

// relayStream pipes the upstream SSE body to the caller byte for byte, with
// no buffering beyond the copy chunk. The upstream request runs on the
// inbound request context, so a caller disconnect aborts it.
func (h *Handle) relayStream(w http.ResponseWriter, r *http.Request, model string, maxTokens int, system string, blocks []task.ContentBlock) {
	resp, err := h.claude.Stream(r.Context(), model, maxTokens, system, blocks)
	if err != nil {
		h.upstreamFailed(w, err)
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, 32*1024)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				// Caller gone; the deferred close cancels upstream.
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if rerr != nil {
			if rerr != io.EOF {
				log.Printf("correct: stream relay: %v", rerr)
			}
			return
		}
	}
}

func (h *Handle) validationFailed(w http.ResponseWriter, err error) {
	var verr *task.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Message)
		return
	}
	log.Printf("correct: validation: %v", err)
	writeError(w, http.StatusBadRequest, msgMalformed)
}

// upstreamFailed maps any upstream problem to a generic 502. The provider's
// status and raw body go to the log only, never to the caller.
func (h *Handle) upstreamFailed(w http.ResponseWriter, err error) {
	var uerr *claude.UpstreamError
	if errors.As(err, &uerr) {
		log.Printf("correct: upstream error: %v", uerr)
	} else {
		log.Printf("correct: upstream call failed: %v", err)
	}
	writeError(w, http.StatusBadGateway, msgUpstream)
}
