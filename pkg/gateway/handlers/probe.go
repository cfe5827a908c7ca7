package handlers

import (
	"encoding/json"
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

// probeMessage is the fixed prompt sent upstream by the connectivity probe.
const probeMessage = "Hello, this is a test message to verify the API is working."

// ProbeHandler handles POST requests to the connectivity-probe endpoint.
// The request body is ignored; the handler sends a canned single-message
// completion upstream and reports whether it succeeded.
type ProbeHandler struct {
	upstream       Completer
	secrets        secrets.Resolver
	credentialName string
	probeModel     string
	metrics        *metrics.GatewayMetrics
	logger         *slog.Logger
}

// NewProbeHandler creates a new connectivity-probe handler.
func NewProbeHandler(completer Completer, resolver secrets.Resolver, credentialName, probeModel string, gm *metrics.GatewayMetrics, logger *slog.Logger) *ProbeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProbeHandler{
		upstream:       completer,
		secrets:        resolver,
		credentialName: credentialName,
		probeModel:     probeModel,
		metrics:        gm,
		logger:         logger.With("component", "gateway.probe"),
	}
}

// ServeHTTP implements http.Handler.
func (h *ProbeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())

	if r.Method != http.MethodPost {
		h.writeError(w, r, start, http.StatusMethodNotAllowed,
			&types.ErrorResponse{Error: "Method not allowed"})
		return
	}

	apiKey, err := h.secrets.GetSecret(h.credentialName)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "upstream credential not configured",
			"request_id", requestID,
			"error", err,
		)
		status, resp := gateway.MapError(err, types.MsgProbeError)
		h.writeError(w, r, start, status, resp)
		return
	}

	messages, _ := json.Marshal([]map[string]string{
		{"role": "user", "content": probeMessage},
	})
	req := &upstream.CompletionRequest{
		Model:    h.probeModel,
		Messages: messages,
	}

	upstreamStart := time.Now()
	reply, err := h.upstream.CompleteText(r.Context(), apiKey, req)
	h.metrics.RecordUpstreamLatency("probe", time.Since(upstreamStart))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "upstream probe failed",
			"request_id", requestID,
			"model", h.probeModel,
			"error", err,
		)
		status, resp := gateway.MapError(err, types.MsgProbeError)
		h.writeError(w, r, start, status, resp)
		return
	}

	h.logger.InfoContext(r.Context(), "upstream probe succeeded",
		"request_id", requestID,
		"model", h.probeModel,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	h.metrics.RecordRequest("probe", http.StatusOK, time.Since(start))
	if err := gateway.WriteJSONResponse(w, http.StatusOK, &types.ProbeResponse{
		Message:  types.ProbeSuccessMessage,
		Response: reply,
	}); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write response",
			"request_id", requestID,
			"error", err,
		)
	}
}

func (h *ProbeHandler) writeError(w http.ResponseWriter, r *http.Request, start time.Time, status int, resp *types.ErrorResponse) {
	h.metrics.RecordRequest("probe", status, time.Since(start))
	if err := gateway.WriteJSONResponse(w, status, resp); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write error response", "error", err)
	}
}
