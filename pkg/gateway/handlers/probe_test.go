package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"launchcanvas/atlas/pkg/gateway/types"
	"launchcanvas/atlas/pkg/upstream"
)

func TestProbeHandler(t *testing.T) {
	t.Run("reports success with upstream reply", func(t *testing.T) {
		completer := &stubCompleter{text: "API is working."}
		h := NewProbeHandler(completer, &stubResolver{value: "sk-test"}, "openai-api-key", "gpt-3.5-turbo", nil, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/chat/probe", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		var resp types.ProbeResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response is not JSON: %v", err)
		}
		if resp.Message != "OpenAI API test successful" {
			t.Errorf("message = %q", resp.Message)
		}
		if resp.Response != "API is working." {
			t.Errorf("response = %q", resp.Response)
		}

		if completer.lastReq.Model != "gpt-3.5-turbo" {
			t.Errorf("probe model = %q", completer.lastReq.Model)
		}
	})

	t.Run("request body is ignored", func(t *testing.T) {
		completer := &stubCompleter{text: "ok"}
		h := NewProbeHandler(completer, &stubResolver{value: "sk-test"}, "openai-api-key", "gpt-3.5-turbo", nil, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/chat/probe",
			strings.NewReader(`this is not even JSON`)))

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200 regardless of body", w.Code)
		}
	})

	t.Run("missing credential returns 500", func(t *testing.T) {
		completer := &stubCompleter{}
		h := NewProbeHandler(completer, &stubResolver{}, "openai-api-key", "gpt-3.5-turbo", nil, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/chat/probe", nil))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}
		resp := decodeError(t, w)
		if !strings.Contains(resp.Error, "not configured on the server") {
			t.Errorf("error = %q", resp.Error)
		}
		if completer.numCalls != 0 {
			t.Error("upstream should not be called without a credential")
		}
	})

	t.Run("upstream failure returns probe error string", func(t *testing.T) {
		completer := &stubCompleter{err: &upstream.Error{StatusCode: 401, Message: "Incorrect API key provided"}}
		h := NewProbeHandler(completer, &stubResolver{value: "sk-bad"}, "openai-api-key", "gpt-3.5-turbo", nil, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/chat/probe", nil))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}
		resp := decodeError(t, w)
		if resp.Error != "Error testing OpenAI API" {
			t.Errorf("error = %q", resp.Error)
		}
		if resp.Message != "Incorrect API key provided" {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("non-POST method rejected", func(t *testing.T) {
		h := NewProbeHandler(&stubCompleter{}, &stubResolver{value: "sk-test"}, "openai-api-key", "gpt-3.5-turbo", nil, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/chat/probe", nil))

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", w.Code)
		}
	})
}
