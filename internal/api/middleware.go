package api

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/isdelr/linkstart-be/internal/api/respond"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// recoverer turns a panic into the generic 500 envelope and logs the stack.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			hlog.FromRequest(r).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from panic")
			respond.Internal(w)
		}()
		next.ServeHTTP(w, r)
	})
}

// requestLogger attaches logger to each request and writes one access line
// per response.
func requestLogger(logger zerolog.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		hlog.NewHandler(logger),
		hlog.RequestIDHandler("req_id", "X-Request-Id"),
		hlog.RemoteAddrHandler("ip"),
		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			hlog.FromRequest(r).Info().
				Str("method", r.Method).
				Stringer("url", r.URL).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("Request handled")
		}),
	}
}
