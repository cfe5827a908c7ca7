package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"launchcanvas/atlas/pkg/gateway"
	"launchcanvas/atlas/pkg/gateway/middleware"
	"launchcanvas/atlas/pkg/gateway/types"
	"launchcanvas/atlas/pkg/secrets"
	"launchcanvas/atlas/pkg/telemetry/metrics"
	"launchcanvas/atlas/pkg/upstream"
)

// Completer issues completion requests to the upstream API.
type Completer interface {
	// Complete sends a completion request and returns the upstream response
	// body verbatim.
	Complete(ctx context.Context, apiKey string, req *upstream.CompletionRequest) ([]byte, error)

	// CompleteText sends a completion request and extracts the assistant's
	// reply text.
	CompleteText(ctx context.Context, apiKey string, req *upstream.CompletionRequest) (string, error)
}

// CompletionsHandler handles POST requests to the forward-completion
// endpoint. It resolves the server-held credential, validates the request
// shape, forwards the payload upstream, and relays the upstream body
// verbatim on success.
type CompletionsHandler struct {
	upstream       Completer
	secrets        secrets.Resolver
	credentialName string
	metrics        *metrics.GatewayMetrics
	logger         *slog.Logger
}

// NewCompletionsHandler creates a new forward-completion handler.
func NewCompletionsHandler(completer Completer, resolver secrets.Resolver, credentialName string, gm *metrics.GatewayMetrics, logger *slog.Logger) *CompletionsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompletionsHandler{
		upstream:       completer,
		secrets:        resolver,
		credentialName: credentialName,
		metrics:        gm,
		logger:         logger.With("component", "gateway.completions"),
	}
}

// ServeHTTP implements http.Handler.
func (h *CompletionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())

	if r.Method != http.MethodPost {
		h.writeError(w, r, start, http.StatusMethodNotAllowed,
			&types.ErrorResponse{Error: "Method not allowed"})
		return
	}

	// Credential absence takes precedence over request validity: an
	// unconfigured server reports its own fault regardless of the body.
	apiKey, err := h.secrets.GetSecret(h.credentialName)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "upstream credential not configured",
			"request_id", requestID,
			"error", err,
		)
		status, resp := gateway.MapError(err, types.MsgProcessingError)
		h.writeError(w, r, start, status, resp)
		return
	}

	req, err := gateway.ParseChatCompletionRequest(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "request validation failed",
			"request_id", requestID,
			"error", err,
		)
		status, resp := gateway.MapError(err, types.MsgProcessingError)
		h.writeError(w, r, start, status, resp)
		return
	}

	upstreamReq := &upstream.CompletionRequest{
		Model:          req.Model,
		Messages:       req.Messages,
		FunctionCall:   req.FunctionCall,
		ResponseFormat: req.ResponseFormat,
	}

	upstreamStart := time.Now()
	body, err := h.upstream.Complete(r.Context(), apiKey, upstreamReq)
	h.metrics.RecordUpstreamLatency("completions", time.Since(upstreamStart))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "upstream completion failed",
			"request_id", requestID,
			"model", req.Model,
			"error", err,
		)
		status, resp := gateway.MapError(err, types.MsgProcessingError)
		h.writeError(w, r, start, status, resp)
		return
	}

	h.logger.InfoContext(r.Context(), "completion forwarded",
		"request_id", requestID,
		"model", req.Model,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	h.metrics.RecordRequest("completions", http.StatusOK, time.Since(start))
	if err := gateway.WriteRawJSONResponse(w, http.StatusOK, body); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write response",
			"request_id", requestID,
			"error", err,
		)
	}
}

func (h *CompletionsHandler) writeError(w http.ResponseWriter, r *http.Request, start time.Time, status int, resp *types.ErrorResponse) {
	h.metrics.RecordRequest("completions", status, time.Since(start))
	if err := gateway.WriteJSONResponse(w, status, resp); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write error response", "error", err)
	}
}
