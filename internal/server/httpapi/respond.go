package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/vitalsync/internal/client/api"
	"github.com/dmitrijs2005/vitalsync/internal/client/notify"
	"github.com/dmitrijs2005/vitalsync/internal/client/session"
	"github.com/dmitrijs2005/vitalsync/internal/common"
)

// envelope is the shape of every JSON response. Toasts raised while
// serving the request are drained into Notifications.
type envelope struct {
	View          string         `json:"view,omitempty"`
	Data          any            `json:"data,omitempty"`
	Error         string         `json:"error,omitempty"`
	Notifications []notify.Toast `json:"notifications"`
}

func (s *Server) drain() []notify.Toast {
	ts := s.deps.Toasts.Drain()
	if ts == nil {
		ts = []notify.Toast{}
	}
	return ts
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, e envelope) {
	e.Notifications = s.drain()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(e); err != nil {
		s.log.Error(r.Context(), "error encoding response", "request_id", RequestID(r.Context()), "error", err)
	}
}

func (s *Server) writeView(w http.ResponseWriter, r *http.Request, status int, view string, data any) {
	s.writeJSON(w, r, status, envelope{View: view, Data: data})
}

func (s *Server) writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	s.writeJSON(w, r, status, envelope{Data: data})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.writeJSON(w, r, status, envelope{Error: err.Error()})
}

// statusFor maps client stack errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, api.ErrMissingFields):
		return http.StatusBadRequest
	case errors.Is(err, api.ErrInvalidCredentials),
		errors.Is(err, api.ErrUnauthorized),
		errors.Is(err, session.ErrNotAuthenticated),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, api.ErrEmailAlreadyRegistered),
		errors.Is(err, session.ErrUserMismatch):
		return http.StatusConflict
	case errors.Is(err, api.ErrDeviceNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, api.ErrNetwork):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
