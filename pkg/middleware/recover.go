package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Recover returns middleware that converts handler panics into a generic
// 500 response so internal failures never reach the client verbatim.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					logger.Error(
						"handler panic",
						zap.Any("panic", v),
						zap.String("uri", r.URL.RequestURI()),
						zap.String("request_id", RequestIDFrom(r.Context())),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
