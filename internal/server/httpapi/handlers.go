package httpapi

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/vitalsync/internal/client/models"
	"github.com/dmitrijs2005/vitalsync/internal/client/session"
)

type credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type sessionResponse struct {
	Phase string           `json:"phase"`
	State models.AuthState `json:"state"`
}

func (s *Server) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Server) sessionState(w http.ResponseWriter, r *http.Request) {
	st := s.deps.Session.Snapshot()
	s.writeData(w, r, http.StatusOK, sessionResponse{Phase: st.Phase().String(), State: st})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := decode(r, &c); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	u, err := s.deps.Auth.Login(ctx, c.Email, []byte(c.Password))
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeAuth(w, r, http.StatusOK, u)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := decode(r, &c); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	u, err := s.deps.Auth.Register(ctx, c.Username, c.Email, []byte(c.Password))
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeAuth(w, r, http.StatusCreated, u)
}

func (s *Server) writeAuth(w http.ResponseWriter, r *http.Request, status int, u models.User) {
	token, err := s.deps.Session.Token()
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeData(w, r, status, authResponse{Token: token, User: u})
}

// logout always leaves the session signed out; a store failure is still
// reported.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	if err := s.deps.Auth.Logout(ctx); err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeData(w, r, http.StatusOK, nil)
}

func (s *Server) connectDevice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	id := mux.Vars(r)["id"]
	s.log.Info(ctx, "connect device", "request_id", RequestID(ctx), "user_id", UserID(ctx), "device_id", id)

	d, err := s.deps.Devices.Connect(ctx, id)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeData(w, r, http.StatusOK, d)
}

func (s *Server) disconnectDevice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	id := mux.Vars(r)["id"]
	s.log.Info(ctx, "disconnect device", "request_id", RequestID(ctx), "user_id", UserID(ctx), "device_id", id)

	if err := s.deps.Devices.Disconnect(ctx, id); err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeData(w, r, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var patch models.UserPatch
	if err := decode(r, &patch); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	// The bearer check ran against the session of that moment; a login in
	// between must not receive this edit.
	if st := s.deps.Session.Snapshot(); st.User == nil || st.User.ID != UserID(r.Context()) {
		s.writeError(w, r, http.StatusConflict, session.ErrUserMismatch)
		return
	}

	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	u, err := s.deps.Profile.Update(ctx, patch)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeData(w, r, http.StatusOK, u)
}
