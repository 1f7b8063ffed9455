package rest

import (
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/dmitrijs2005/opsapi/internal/common"
	"github.com/dmitrijs2005/opsapi/internal/server/services"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

var rejectionMessages = map[string]string{
	services.ReasonMissing: "Token is missing",
	services.ReasonInvalid: "Token is invalid",
	services.ReasonExpired: "Token has expired",
}

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// requestID reuses a client supplied X-Request-ID or generates one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

// routeLabel returns the path template of the matching route so metric
// labels stay bounded.
func routeLabel(router *mux.Router, r *http.Request) string {
	var match mux.RouteMatch
	if router.Match(r, &match) && match.Route != nil {
		if tpl, err := match.Route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// instrument logs every request and records it in the HTTP metrics.
func (a *API) instrument(router *mux.Router) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			d := time.Since(start)
			a.metrics.ObserveHTTP(r.Method, routeLabel(router, r), rw.status, d)
			a.logger.Info(r.Context(), "http request",
				"request_id", RequestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.status,
				"duration", d,
			)
		})
	}
}

// recoverer turns a handler panic into a 500 response.
func (a *API) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				a.logger.Error(r.Context(), "panic in handler",
					"request_id", RequestIDFromContext(r.Context()),
					"panic", p,
					"stack", string(debug.Stack()),
				)
				writeInternalError(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requireAuth resolves the Authorization header before calling next. Only
// credential problems yield 401; a failing store yields 500.
func (a *API) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := a.authn.Authenticate(ctx, r.Header.Get(common.AuthorizationHeaderName))
		if err != nil {
			var rej *services.RejectedError
			if errors.As(err, &rej) {
				a.metrics.AuthRejectionsTotal.WithLabelValues(rej.Reason).Inc()
				_ = writeJSON(w, http.StatusUnauthorized, rejectionResponse{
					Message: rejectionMessages[rej.Reason],
					Reason:  rej.Reason,
				})
				return
			}
			a.logger.Error(ctx, "authentication failed", "request_id", RequestIDFromContext(ctx), "error", err)
			writeInternalError(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(ctx, id)))
	})
}
