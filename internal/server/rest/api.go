// Package rest exposes the JSON HTTP API: registration, login, the
// operation ledger and the user profile.
package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/opsapi/internal/logging"
	"github.com/dmitrijs2005/opsapi/internal/server/metrics"
	"github.com/dmitrijs2005/opsapi/internal/server/services"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Version is reported by /api/status.
const Version = "1.0.0"

type API struct {
	users      *services.UserService
	operations *services.OperationService
	authn      *services.Authenticator
	metrics    *metrics.Metrics
	logger     logging.Logger
	now        func() time.Time
}

func NewAPI(us *services.UserService, ops *services.OperationService, authn *services.Authenticator, m *metrics.Metrics, l logging.Logger) *API {
	return &API{
		users:      us,
		operations: ops,
		authn:      authn,
		metrics:    m,
		logger:     l.With("module", "rest"),
		now:        time.Now,
	}
}

// Handler returns the complete HTTP handler with middleware applied.
func (a *API) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/register", a.register).Methods(http.MethodPost)
	r.HandleFunc("/api/login", a.login).Methods(http.MethodPost)
	r.HandleFunc("/api/status", a.status).Methods(http.MethodGet)

	r.Handle("/api/operations", a.requireAuth(a.createOperation)).Methods(http.MethodPost)
	r.Handle("/api/operations", a.requireAuth(a.listOperations)).Methods(http.MethodGet)
	r.Handle("/api/user/profile", a.requireAuth(a.profile)).Methods(http.MethodGet)

	r.Handle("/metrics", a.metrics.Handler()).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	var h http.Handler = r
	h = a.recoverer(h)
	h = a.instrument(r)(h)
	h = requestID(h)

	return otelhttp.NewHandler(h, "opsapi")
}
