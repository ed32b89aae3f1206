package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/logger"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/utils"
)

// Recovery returns a middleware that recovers from panics and responds
// with a 500 instead of dropping the connection.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.WithFields(map[string]interface{}{
						"panic":      fmt.Sprintf("%v", rec),
						"method":     r.Method,
						"path":       r.URL.Path,
						"request_id": GetRequestID(r),
						"stack":      string(debug.Stack()),
					}).Error("Panic recovered")

					utils.WriteError(w, errors.Internal("Internal server error", nil))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
