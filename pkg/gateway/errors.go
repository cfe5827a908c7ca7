package gateway

import (
	"errors"
	"net/http"

	"launchcanvas/atlas/pkg/gateway/types"
	"launchcanvas/atlas/pkg/secrets"
	"launchcanvas/atlas/pkg/upstream"
)

// MapError converts an error from the forward-completion path to the
// status code and normalized error document the gateway contract requires:
//
//   - request parse/validation failure -> 400, fixed validation literal
//   - missing server-held credential   -> 500, configuration-fault literal
//   - upstream failure (any)           -> 500, endpoint error string plus
//     upstream error text, or "Unknown error" when none is available
//
// upstreamMsg selects the endpoint-specific error string
// (types.MsgProcessingError or types.MsgProbeError).
func MapError(err error, upstreamMsg string) (int, *types.ErrorResponse) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, types.NewInvalidParamsError()
	}

	var notFound *secrets.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusInternalServerError, types.NewKeyNotConfiguredError()
	}

	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		return http.StatusInternalServerError, types.NewUpstreamError(upstreamMsg, upErr.Message)
	}

	// Unexpected internal failure: same caller-facing shape as an upstream
	// fault, with whatever text the error carries.
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return http.StatusInternalServerError, types.NewUpstreamError(upstreamMsg, detail)
}
