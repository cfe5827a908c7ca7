package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"launchcanvas/atlas/pkg/gateway/types"
	"launchcanvas/atlas/pkg/secrets"
	"launchcanvas/atlas/pkg/upstream"
)

// stubCompleter is a Completer with scripted responses.
type stubCompleter struct {
	body     []byte
	text     string
	err      error
	lastReq  *upstream.CompletionRequest
	lastKey  string
	numCalls int
}

func (s *stubCompleter) Complete(ctx context.Context, apiKey string, req *upstream.CompletionRequest) ([]byte, error) {
	s.numCalls++
	s.lastKey = apiKey
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.body, nil
}

func (s *stubCompleter) CompleteText(ctx context.Context, apiKey string, req *upstream.CompletionRequest) (string, error) {
	s.numCalls++
	s.lastKey = apiKey
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

// stubResolver resolves every secret to a fixed value, or fails when empty.
type stubResolver struct {
	value string
}

func (s *stubResolver) GetSecret(name string) (string, error) {
	if s.value == "" {
		return "", &secrets.NotFoundError{Name: name, Source: "test"}
	}
	return s.value, nil
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *types.ErrorResponse {
	t.Helper()
	var resp types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not a JSON error document: %v", err)
	}
	return &resp
}

func TestCompletionsHandler(t *testing.T) {
	validBody := `{"model":"gpt-4","messages":[{"role":"user","content":"hi"}]}`

	t.Run("forwards upstream body verbatim on success", func(t *testing.T) {
		upstreamBody := []byte(`{"id":"cmpl-1","choices":[{"message":{"content":"hello"}}]}`)
		completer := &stubCompleter{body: upstreamBody}
		h := NewCompletionsHandler(completer, &stubResolver{value: "sk-test"}, "openai-api-key", nil, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader(validBody)))

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
		if w.Body.String() != string(upstreamBody) {
			t.Errorf("body = %q, want upstream body verbatim", w.Body.String())
		}
		if completer.lastKey != "sk-test" {
			t.Errorf("upstream called with key %q", completer.lastKey)
		}
	})

	t.Run("missing model returns the fixed 400 literal", func(t *testing.T) {
		h := NewCompletionsHandler(&stubCompleter{}, &stubResolver{value: "sk-test"}, "openai-api-key", nil, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/chat/completions",
			strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`)))

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
		resp := decodeError(t, w)
		if resp.Error != "Invalid request parameters. Required: model, messages (array)" {
			t.Errorf("error = %q", resp.Error)
		}
	})

	t.Run("messages not array-shaped returns 400", func(t *testing.T) {
		h := NewCompletionsHandler(&stubCompleter{}, &stubResolver{value: "sk-test"}, "openai-api-key", nil, nil)

		for _, body := range []string{
			`{"model":"gpt-4"}`,
			`{"model":"gpt-4","messages":"not an array"}`,
			`{"model":"gpt-4","messages":{"role":"user"}}`,
			`not json at all`,
		} {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader(body)))

			if w.Code != http.StatusBadRequest {
				t.Errorf("body %q: status = %d, want 400", body, w.Code)
			}
			if resp := decodeError(t, w); resp.Error != types.MsgInvalidParams {
				t.Errorf("body %q: error = %q", body, resp.Error)
			}
		}
	})

	t.Run("missing credential wins over request validity", func(t *testing.T) {
		completer := &stubCompleter{}
		h := NewCompletionsHandler(completer, &stubResolver{}, "openai-api-key", nil, nil)

		for _, body := range []string{validBody, `{"broken`} {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader(body)))

			if w.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want 500", w.Code)
			}
			resp := decodeError(t, w)
			if !strings.Contains(resp.Error, "not configured on the server") {
				t.Errorf("error = %q, want credential fault", resp.Error)
			}
		}
		if completer.numCalls != 0 {
			t.Error("upstream should never be called without a credential")
		}
	})

	t.Run("upstream failure returns 500 with upstream detail", func(t *testing.T) {
		completer := &stubCompleter{err: &upstream.Error{StatusCode: 429, Message: "Rate limit exceeded"}}
		h := NewCompletionsHandler(completer, &stubResolver{value: "sk-test"}, "openai-api-key", nil, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader(validBody)))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}
		resp := decodeError(t, w)
		if resp.Error != "Error processing OpenAI request" {
			t.Errorf("error = %q", resp.Error)
		}
		if resp.Message != "Rate limit exceeded" {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("upstream failure without detail reports Unknown error", func(t *testing.T) {
		completer := &stubCompleter{err: &upstream.Error{StatusCode: 500}}
		h := NewCompletionsHandler(completer, &stubResolver{value: "sk-test"}, "openai-api-key", nil, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader(validBody)))

		if resp := decodeError(t, w); resp.Message != "Unknown error" {
			t.Errorf("message = %q, want Unknown error", resp.Message)
		}
	})

	t.Run("optional directives pass through, absence preserved", func(t *testing.T) {
		completer := &stubCompleter{body: []byte(`{}`)}
		h := NewCompletionsHandler(completer, &stubResolver{value: "sk-test"}, "openai-api-key", nil, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/chat/completions",
			strings.NewReader(`{"model":"gpt-4","messages":[{}],"response_format":{"type":"json_object"}}`)))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if completer.lastReq.FunctionCall != nil {
			t.Error("function_call was absent and must stay absent")
		}
		if string(completer.lastReq.ResponseFormat) != `{"type":"json_object"}` {
			t.Errorf("response_format = %s", completer.lastReq.ResponseFormat)
		}
	})

	t.Run("non-POST method rejected", func(t *testing.T) {
		h := NewCompletionsHandler(&stubCompleter{}, &stubResolver{value: "sk-test"}, "openai-api-key", nil, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/chat/completions", nil))

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", w.Code)
		}
	})
}
