package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"launchcanvas/atlas/pkg/analysis"
	"launchcanvas/atlas/pkg/gateway"
	"launchcanvas/atlas/pkg/gateway/middleware"
	"launchcanvas/atlas/pkg/gateway/types"
	"launchcanvas/atlas/pkg/journey"
)

// maxAnalysisBodySize limits analysis request bodies (1MB).
const maxAnalysisBodySize = 1 * 1024 * 1024

// AnalysesHandler serves CRUD requests for saved analysis records.
//
// Routes:
//
//	POST   /v1/analyses       create a record from a canvas snapshot
//	GET    /v1/analyses       list records, newest first
//	GET    /v1/analyses/{id}  fetch one record
//	DELETE /v1/analyses/{id}  delete one record
type AnalysesHandler struct {
	storage analysis.Storage
	table   *journey.LimitationsTable
	logger  *slog.Logger
}

// NewAnalysesHandler creates a new analyses handler.
func NewAnalysesHandler(storage analysis.Storage, table *journey.LimitationsTable, logger *slog.Logger) *AnalysesHandler {
	if table == nil {
		table = journey.NewDefaultTable()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysesHandler{
		storage: storage,
		table:   table,
		logger:  logger.With("component", "gateway.analyses"),
	}
}

// createAnalysisRequest is the canvas snapshot accepted by the create route.
type createAnalysisRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	ModelID     string              `json:"model_id"`
	Features    []journey.Feature   `json:"features"`
	Challenges  []journey.Challenge `json:"challenges"`
	Solutions   []journey.Solution  `json:"solutions"`
}

// ServeHTTP implements http.Handler.
func (h *AnalysesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/analyses"), "/")

	switch {
	case id == "" && r.Method == http.MethodPost:
		h.create(w, r)
	case id == "" && r.Method == http.MethodGet:
		h.list(w, r)
	case id != "" && r.Method == http.MethodGet:
		h.get(w, r, id)
	case id != "" && r.Method == http.MethodDelete:
		h.delete(w, r, id)
	default:
		h.writeJSON(w, r, http.StatusMethodNotAllowed,
			&types.ErrorResponse{Error: "Method not allowed"})
	}
}

func (h *AnalysesHandler) create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req createAnalysisRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnalysisBodySize))
	if err := decoder.Decode(&req); err != nil {
		h.writeJSON(w, r, http.StatusBadRequest,
			&types.ErrorResponse{Error: "Invalid request body", Message: err.Error()})
		return
	}
	if req.Title == "" {
		h.writeJSON(w, r, http.StatusBadRequest,
			&types.ErrorResponse{Error: "Invalid request body", Message: "title is required"})
		return
	}

	record := analysis.NewRecord(req.Title)
	record.Description = req.Description
	record.ModelID = req.ModelID
	record.Features = req.Features
	record.Challenges = req.Challenges
	record.Solutions = req.Solutions

	// Derive the journey when the snapshot supports one. A limitations-table
	// gap is a configuration fault and fails the save.
	if model, ok := journey.ModelByID(req.ModelID); ok {
		doc, err := journey.Synthesize(journey.Inputs{
			Model:       model,
			Features:    req.Features,
			Challenges:  req.Challenges,
			Solutions:   req.Solutions,
			Description: req.Description,
		}, h.table)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "journey synthesis failed",
				"request_id", requestID,
				"model_id", req.ModelID,
				"error", err,
			)
			h.writeJSON(w, r, http.StatusInternalServerError,
				&types.ErrorResponse{Error: "Error deriving user journey", Message: err.Error()})
			return
		}
		record.Journey = doc
	}

	if err := h.storage.Create(r.Context(), record); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to store analysis",
			"request_id", requestID,
			"error", err,
		)
		h.writeJSON(w, r, http.StatusInternalServerError,
			&types.ErrorResponse{Error: "Error saving analysis"})
		return
	}

	h.logger.InfoContext(r.Context(), "analysis created",
		"request_id", requestID,
		"analysis_id", record.ID,
	)

	h.writeJSON(w, r, http.StatusCreated, record)
}

func (h *AnalysesHandler) list(w http.ResponseWriter, r *http.Request) {
	opts := analysis.ListOptions{}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.Offset = n
		}
	}

	records, err := h.storage.List(r.Context(), opts)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list analyses", "error", err)
		h.writeJSON(w, r, http.StatusInternalServerError,
			&types.ErrorResponse{Error: "Error listing analyses"})
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"analyses": records,
		"count":    len(records),
	})
}

func (h *AnalysesHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	record, err := h.storage.Get(r.Context(), id)
	if err != nil {
		var notFound *analysis.NotFoundError
		if errors.As(err, &notFound) {
			h.writeJSON(w, r, http.StatusNotFound,
				&types.ErrorResponse{Error: "Analysis not found"})
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to fetch analysis",
			"analysis_id", id,
			"error", err,
		)
		h.writeJSON(w, r, http.StatusInternalServerError,
			&types.ErrorResponse{Error: "Error fetching analysis"})
		return
	}

	h.writeJSON(w, r, http.StatusOK, record)
}

func (h *AnalysesHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.storage.Delete(r.Context(), id); err != nil {
		var notFound *analysis.NotFoundError
		if errors.As(err, &notFound) {
			h.writeJSON(w, r, http.StatusNotFound,
				&types.ErrorResponse{Error: "Analysis not found"})
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to delete analysis",
			"analysis_id", id,
			"error", err,
		)
		h.writeJSON(w, r, http.StatusInternalServerError,
			&types.ErrorResponse{Error: "Error deleting analysis"})
		return
	}

	h.logger.InfoContext(r.Context(), "analysis deleted",
		"request_id", middleware.GetRequestID(r.Context()),
		"analysis_id", id,
	)

	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

func (h *AnalysesHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	if err := gateway.WriteJSONResponse(w, status, body); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write response", "error", err)
	}
}
