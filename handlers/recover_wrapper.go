package handlers

import (
	"net/http"
	"runtime"

	"github.com/rs/zerolog/log"
)

// RecoverWrapper wraps an http.HandlerFunc with panic recovery
func RecoverWrapper(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				log.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Bytes("stack", stack).
					Msg("panic recovered")
				writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Errors: formError(unexpectedError)})
			}
		}()

		handler(w, r)
	}
}

// Recoverer adapts RecoverWrapper to router middleware.
func Recoverer(next http.Handler) http.Handler {
	return RecoverWrapper(next.ServeHTTP)
}
