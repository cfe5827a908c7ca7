package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSONResponse writes a JSON response with the given status code.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}

	return nil
}

// WriteRawJSONResponse writes a pre-serialized JSON body verbatim with the
// given status code. Used to relay the upstream completion body unchanged.
func WriteRawJSONResponse(w http.ResponseWriter, statusCode int, body []byte) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write response body: %w", err)
	}

	return nil
}
