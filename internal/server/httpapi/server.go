// Package httpapi exposes the client stack over HTTP: the guarded routes
// return their view model as JSON and the /api/v1 endpoints drive the
// session, the devices and the profile.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/vitalsync/internal/client/notify"
	"github.com/dmitrijs2005/vitalsync/internal/client/router"
	"github.com/dmitrijs2005/vitalsync/internal/client/services"
	"github.com/dmitrijs2005/vitalsync/internal/client/session"
	"github.com/dmitrijs2005/vitalsync/internal/client/views"
	"github.com/dmitrijs2005/vitalsync/internal/logging"
)

// Deps is the client stack the handlers run on. Toasts must be the buffer
// the services notify into.
type Deps struct {
	Session session.Manager
	Router  *router.Router
	Views   *views.Builder
	Auth    services.AuthService
	Devices services.DeviceService
	Profile services.ProfileService
	Toasts  *notify.Buffer
}

type Server struct {
	deps    Deps
	secret  []byte
	timeout time.Duration
	log     logging.Logger
}

// NewServer builds the handler set. timeout bounds every call into the
// services; secret verifies bearer tokens.
func NewServer(d Deps, secret []byte, timeout time.Duration, logger logging.Logger) *Server {
	return &Server{
		deps:    d,
		secret:  secret,
		timeout: timeout,
		log:     logger.With("module", "http_server"),
	}
}

// Routes returns the mux with middleware installed.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestID, s.accessLog)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/session", s.sessionState).Methods(http.MethodGet)
	api.HandleFunc("/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/logout", s.logout).Methods(http.MethodPost)

	secured := api.NewRoute().Subrouter()
	secured.Use(s.requireBearer)
	secured.HandleFunc("/devices/{id}/connect", s.connectDevice).Methods(http.MethodPost)
	secured.HandleFunc("/devices/{id}/disconnect", s.disconnectDevice).Methods(http.MethodPost)
	secured.HandleFunc("/profile", s.updateProfile).Methods(http.MethodPut)

	// Pages go through the client router so unknown paths, trailing
	// slashes and the login redirect behave as in the REPL.
	r.PathPrefix("/").HandlerFunc(s.page).Methods(http.MethodGet)

	r.NotFoundHandler = s.requestID(s.accessLog(http.HandlerFunc(s.notFound)))
	r.MethodNotAllowedHandler = s.requestID(s.accessLog(http.HandlerFunc(s.methodNotAllowed)))
	return r
}
