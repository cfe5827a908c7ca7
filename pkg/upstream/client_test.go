package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"launchcanvas/atlas/pkg/config"
)

func testClient(baseURL string) *Client {
	return NewClient(&config.UpstreamConfig{
		BaseURL:             baseURL,
		ProbeModel:          "gpt-3.5-turbo",
		Timeout:             5 * time.Second,
		MaxIdleConns:        2,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     time.Second,
	})
}

func TestClientComplete(t *testing.T) {
	t.Run("returns upstream body verbatim", func(t *testing.T) {
		const upstreamBody = `{"id":"chatcmpl-1","choices":[{"message":{"content":"hi"}}]}`

		var gotAuth string
		var gotBody map[string]json.RawMessage
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("failed to decode forwarded body: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(upstreamBody))
		}))
		defer server.Close()

		client := testClient(server.URL)
		req := &CompletionRequest{
			Model:    "gpt-4",
			Messages: json.RawMessage(`[{"role":"user","content":"hello"}]`),
		}

		body, err := client.Complete(context.Background(), "sk-test", req)
		if err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
		if string(body) != upstreamBody {
			t.Errorf("Complete() body = %q, want verbatim %q", body, upstreamBody)
		}
		if gotAuth != "Bearer sk-test" {
			t.Errorf("Authorization = %q, want Bearer sk-test", gotAuth)
		}
	})

	t.Run("omitted directives are not forwarded", func(t *testing.T) {
		var gotBody map[string]json.RawMessage
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := testClient(server.URL)
		req := &CompletionRequest{
			Model:    "gpt-4",
			Messages: json.RawMessage(`[{"role":"user","content":"hello"}]`),
		}

		if _, err := client.Complete(context.Background(), "sk-test", req); err != nil {
			t.Fatalf("Complete() error = %v", err)
		}

		if _, present := gotBody["function_call"]; present {
			t.Error("function_call should not be forwarded when absent")
		}
		if _, present := gotBody["response_format"]; present {
			t.Error("response_format should not be forwarded when absent")
		}
	})

	t.Run("supplied directives are forwarded", func(t *testing.T) {
		var gotBody map[string]json.RawMessage
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := testClient(server.URL)
		req := &CompletionRequest{
			Model:          "gpt-4",
			Messages:       json.RawMessage(`[{"role":"user","content":"hello"}]`),
			FunctionCall:   json.RawMessage(`{"name":"get_feedback"}`),
			ResponseFormat: json.RawMessage(`{"type":"json_object"}`),
		}

		if _, err := client.Complete(context.Background(), "sk-test", req); err != nil {
			t.Fatalf("Complete() error = %v", err)
		}

		if string(gotBody["function_call"]) != `{"name":"get_feedback"}` {
			t.Errorf("function_call forwarded as %s", gotBody["function_call"])
		}
		if string(gotBody["response_format"]) != `{"type":"json_object"}` {
			t.Errorf("response_format forwarded as %s", gotBody["response_format"])
		}
	})

	t.Run("upstream error status yields typed error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached"}}`))
		}))
		defer server.Close()

		client := testClient(server.URL)
		req := &CompletionRequest{
			Model:    "gpt-4",
			Messages: json.RawMessage(`[]`),
		}

		_, err := client.Complete(context.Background(), "sk-test", req)
		var upErr *Error
		if !errors.As(err, &upErr) {
			t.Fatalf("Complete() error = %v, want *Error", err)
		}
		if upErr.StatusCode != http.StatusTooManyRequests {
			t.Errorf("StatusCode = %d, want 429", upErr.StatusCode)
		}
		if upErr.Message != "Rate limit reached" {
			t.Errorf("Message = %q, want upstream error text", upErr.Message)
		}
	})

	t.Run("transport failure yields typed error with zero status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // refuse connections

		client := testClient(server.URL)
		req := &CompletionRequest{
			Model:    "gpt-4",
			Messages: json.RawMessage(`[]`),
		}

		_, err := client.Complete(context.Background(), "sk-test", req)
		var upErr *Error
		if !errors.As(err, &upErr) {
			t.Fatalf("Complete() error = %v, want *Error", err)
		}
		if upErr.StatusCode != 0 {
			t.Errorf("StatusCode = %d, want 0 for transport failure", upErr.StatusCode)
		}
	})
}

func TestClientCompleteText(t *testing.T) {
	t.Run("extracts assistant reply", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"API is working"}}]}`))
		}))
		defer server.Close()

		client := testClient(server.URL)
		req := &CompletionRequest{
			Model:    "gpt-3.5-turbo",
			Messages: json.RawMessage(`[{"role":"user","content":"test"}]`),
		}

		text, err := client.CompleteText(context.Background(), "sk-test", req)
		if err != nil {
			t.Fatalf("CompleteText() error = %v", err)
		}
		if text != "API is working" {
			t.Errorf("CompleteText() = %q, want API is working", text)
		}
	})

	t.Run("empty choices yields error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		client := testClient(server.URL)
		req := &CompletionRequest{
			Model:    "gpt-3.5-turbo",
			Messages: json.RawMessage(`[]`),
		}

		if _, err := client.CompleteText(context.Background(), "sk-test", req); err == nil {
			t.Error("CompleteText() should fail when upstream returns no choices")
		}
	})
}

func TestUpstreamErrorText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"standard error shape", `{"error":{"message":"Invalid API key"}}`, "Invalid API key"},
		{"raw body fallback", `service unavailable`, "service unavailable"},
		{"empty body", ``, "Unknown error"},
		{"whitespace body", "  \n ", "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := upstreamErrorText([]byte(tt.body)); got != tt.want {
				t.Errorf("upstreamErrorText(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
