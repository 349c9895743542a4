package handle

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essay-proxy/api/internal/config"
	"essay-proxy/api/internal/engine/claude"
)

const stubSSE = "event: message_start\ndata: {}\n\nevent: content_block_delta\ndata: {\"delta\":{\"text\":\"ええ感じや\"}}\n\n"

// upstreamStub records calls and answers streaming requests with SSE bytes,
// non-streaming ones with a Messages envelope.
type upstreamStub struct {
	calls      atomic.Int64
	lastModel  string
	lastTokens int
	status     int
	failBody   string
}

func (s *upstreamStub) handler(w http.ResponseWriter, r *http.Request) {
	s.calls.Add(1)
	var req struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Stream    bool   `json:"stream"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	s.lastModel = req.Model
	s.lastTokens = req.MaxTokens

	if s.status != 0 {
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(s.failBody))
		return
	}
	if req.Stream {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(stubSSE))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"transcribed text"}]}`))
}

func newTestHandle(t *testing.T, stub *upstreamStub) *Handle {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(stub.handler))
	t.Cleanup(srv.Close)
	cfg := &config.Config{
		ClaudeModel:    "model-grading",
		ClaudeOCRModel: "model-ocr",
		MaxFieldChars:  10000,
		MaxTokens:      8192,
		OCRMaxTokens:   1024,
	}
	return New(claude.New("test-key", cfg.ClaudeModel, srv.URL), cfg)
}

func post(h *Handle, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Correct(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func assertCORS(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestPreflight(t *testing.T) {
	h := newTestHandle(t, &upstreamStub{})
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	w := httptest.NewRecorder()
	h.Correct(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assertCORS(t, w)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandle(t, &upstreamStub{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.Correct(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assertCORS(t, w)
}

func TestMalformedBody(t *testing.T) {
	stub := &upstreamStub{}
	h := newTestHandle(t, stub)

	for _, body := range []string{"not json", `{"answer":"x"}`} {
		w := post(h, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, msgMalformed, errorMessage(t, w))
		assertCORS(t, w)
	}
	assert.EqualValues(t, 0, stub.calls.Load(), "upstream must not be contacted")
}

func TestUnknownTaskKind(t *testing.T) {
	stub := &upstreamStub{}
	h := newTestHandle(t, stub)
	w := post(h, `{"taskKind":"poem","answer":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "poem")
	assert.EqualValues(t, 0, stub.calls.Load())
}

func TestValidationErrorSurfaced(t *testing.T) {
	stub := &upstreamStub{}
	h := newTestHandle(t, stub)
	w := post(h, `{"taskKind":"translation","answer":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "japaneseText and answer are required", errorMessage(t, w))
	assert.EqualValues(t, 0, stub.calls.Load())
}

func TestFreeEssayStreamsVerbatim(t *testing.T) {
	stub := &upstreamStub{}
	h := newTestHandle(t, stub)
	w := post(h, `{"taskKind":"free-essay","answer":"I go to school."}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, stubSSE, w.Body.String())
	assertCORS(t, w)
	assert.Equal(t, "model-grading", stub.lastModel)
	assert.Equal(t, 8192, stub.lastTokens)
}

func TestLegacyNonStreamingEnvelope(t *testing.T) {
	stub := &upstreamStub{}
	h := newTestHandle(t, stub)
	w := post(h, `{"taskKind":"free-essay","answer":"I go to school.","stream":false}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var body struct {
		Correction string `json:"correction"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "transcribed text", body.Correction)
}

func TestDiagramOCRUsesSmallModel(t *testing.T) {
	stub := &upstreamStub{}
	h := newTestHandle(t, stub)
	w := post(h, `{"taskKind":"diagram-ocr","imageData":"data:image/png;base64,iVBORw0KGgo="}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "model-ocr", stub.lastModel)
	assert.Equal(t, 1024, stub.lastTokens)
}

func TestUpstreamFailureIsGeneric(t *testing.T) {
	stub := &upstreamStub{status: http.StatusInternalServerError, failBody: `{"error":"internal provider secret detail"}`}
	h := newTestHandle(t, stub)
	w := post(h, `{"taskKind":"free-essay","answer":"x"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, msgUpstream, errorMessage(t, w))
	assert.NotContains(t, w.Body.String(), "secret detail", "provider error must not leak")
	assertCORS(t, w)
}
