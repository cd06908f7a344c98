package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"hearthwick-api/pkg/apierror"
	"hearthwick-api/pkg/response"
)

// Recovery is a middleware that recovers from panics. Nothing is allowed to
// crash the process; the caller gets a generic 500.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC: %v\n%s", err, debug.Stack())
				response.Error(w, apierror.Internal("Internal server error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
