package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"launchcanvas/atlas/pkg/config"
)

// CORSMiddleware attaches the permissive cross-origin header set to every
// response, success or failure, and short-circuits preflight requests.
//
// This header set is the dominant behavioral contract of the gateway:
// browser clients call it directly, so the headers must be present on all
// code paths. Preflight OPTIONS requests return 200 with an empty body and
// no further processing.
func CORSMiddleware(cfg *config.CORSConfig) func(http.Handler) http.Handler {
	origin := cfg.AllowedOrigin
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Headers", headers)
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Max-Age", maxAge)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
