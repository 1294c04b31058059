package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recovery recovers from panics in downstream handlers and returns a
// JSON 500 response if nothing has been written yet.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(r.Context())

				slog.ErrorContext(r.Context(), "panic recovered",
					"error", err,
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)

				response := map[string]string{
					"error":      "internal server error",
					"request_id": requestID,
				}
				if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
					slog.ErrorContext(r.Context(), "failed to encode panic response",
						"error", encodeErr)
				}
			}
		}()

		next.ServeHTTP(w, r)
	})
}
