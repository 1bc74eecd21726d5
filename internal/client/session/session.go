package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/vitalsync/internal/client/api"
	"github.com/dmitrijs2005/vitalsync/internal/client/models"
	"github.com/dmitrijs2005/vitalsync/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/vitalsync/internal/logging"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUserMismatch rejects an update for a user who is no longer signed in.
	ErrUserMismatch = errors.New("user is not the signed-in user")
)

// diagnosticsBuffer is how many undelivered diagnostics are kept; older ones
// are dropped first.
const diagnosticsBuffer = 16

// Diagnostic describes a swallowed failure.
type Diagnostic struct {
	Op  string
	Err error
	At  time.Time
}

// Manager is what routers, services and front ends see of the session.
type Manager interface {
	Snapshot() models.AuthState
	Phase() models.Phase

	// Bootstrap resolves the CHECKING phase from the persisted token and
	// user. Concurrent calls share a single check; once resolved it returns
	// the current phase without touching the store.
	Bootstrap(ctx context.Context) models.Phase
	// WaitResolved blocks until the session leaves CHECKING or ctx is done.
	// It does not start a check itself.
	WaitResolved(ctx context.Context) (models.Phase, error)

	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, username, email, password string) (models.User, error)
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, u models.User) error
	Token() (string, error)

	// Subscribe delivers every state change, latest wins. cancel closes the
	// channel.
	Subscribe() (<-chan models.AuthState, func())
	Diagnostics() <-chan Diagnostic
}

// Session is the Manager implementation. The preference store is owned by
// the session; nothing else writes the auth keys.
type Session struct {
	store preferences.Store
	api   api.Client
	log   logging.Logger
	now   func() time.Time

	// writeMu serializes every store write together with the state change
	// that follows it. Lock order: writeMu before mu.
	writeMu sync.Mutex

	mu       sync.Mutex
	state    models.AuthState
	token    string
	epoch    uint64
	inflight chan struct{}
	resolved chan struct{}
	subs     map[uint64]chan models.AuthState
	nextSub  uint64

	diags chan Diagnostic
}

var _ Manager = (*Session)(nil)

func New(store preferences.Store, client api.Client, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Session{
		store:    store,
		api:      client,
		log:      logger.With("module", "session"),
		now:      time.Now,
		state:    models.InitialAuthState(),
		resolved: make(chan struct{}),
		subs:     make(map[uint64]chan models.AuthState),
		diags:    make(chan Diagnostic, diagnosticsBuffer),
	}
}

func (s *Session) Snapshot() models.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

func (s *Session) Phase() models.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Phase()
}

func (s *Session) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.IsAuthenticated {
		return "", ErrNotAuthenticated
	}
	return s.token, nil
}

func (s *Session) Bootstrap(ctx context.Context) models.Phase {
	s.mu.Lock()
	if s.state.IsAuthenticated || !s.state.Loading {
		p := s.state.Phase()
		s.mu.Unlock()
		return p
	}
	if wait := s.inflight; wait != nil {
		s.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
		}
		return s.Phase()
	}
	done := make(chan struct{})
	s.inflight = done
	epoch := s.epoch
	s.mu.Unlock()

	// Waiters share this check, so it runs to completion even if the
	// caller that started it gives up.
	token, user, err := s.readPersisted(context.WithoutCancel(ctx))

	s.mu.Lock()
	defer s.mu.Unlock()
	defer close(done)
	s.inflight = nil

	if s.epoch != epoch {
		// login or logout won the race; their state stands
		return s.state.Phase()
	}

	switch {
	case err != nil:
		s.log.Warn(ctx, "auth bootstrap failed", "error", err)
		s.publishLocked(Diagnostic{Op: "bootstrap", Err: err, At: s.now()})
		st := models.Unauthenticated()
		st.Error = err.Error()
		s.setLocked(st, "")
	case user != nil && token != "":
		s.log.Info(ctx, "session restored", "user_id", user.ID)
		s.setLocked(models.AuthenticatedAs(*user), token)
	default:
		s.log.Debug(ctx, "no persisted session")
		s.setLocked(models.Unauthenticated(), "")
	}
	return s.state.Phase()
}

// readPersisted loads the token and the user concurrently. A missing key
// yields a zero value; only driver and decoding failures are errors.
func (s *Session) readPersisted(ctx context.Context) (string, *models.User, error) {
	var (
		token, rawUser string
		hasUser        bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, _, err := s.store.Get(gctx, preferences.KeyAuthToken)
		token = v
		return err
	})
	g.Go(func() error {
		v, ok, err := s.store.Get(gctx, preferences.KeyUser)
		rawUser, hasUser = v, ok
		return err
	})
	if err := g.Wait(); err != nil {
		return "", nil, err
	}
	if !hasUser {
		return token, nil, nil
	}

	var u *models.User
	if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
		return "", nil, fmt.Errorf("decode persisted user: %w", err)
	}
	return token, u, nil
}

func (s *Session) WaitResolved(ctx context.Context) (models.Phase, error) {
	select {
	case <-s.resolved:
		return s.Phase(), nil
	case <-ctx.Done():
		return s.Phase(), ctx.Err()
	}
}

func (s *Session) Login(ctx context.Context, email, password string) (models.User, error) {
	res, err := s.api.LoginUser(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}
	if err := s.establish(ctx, res); err != nil {
		return models.User{}, err
	}
	s.log.Info(ctx, "logged in", "user_id", res.User.ID)
	return res.User, nil
}

func (s *Session) Register(ctx context.Context, username, email, password string) (models.User, error) {
	res, err := s.api.RegisterUser(ctx, username, email, password)
	if err != nil {
		return models.User{}, err
	}
	if err := s.establish(ctx, res); err != nil {
		return models.User{}, err
	}
	s.log.Info(ctx, "registered", "user_id", res.User.ID)
	return res.User, nil
}

// establish persists token and user in one commit and only then marks the
// session authenticated.
func (s *Session) establish(ctx context.Context, res api.AuthResult) error {
	raw, err := json.Marshal(res.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err = s.store.Commit(ctx,
		preferences.SetOp(preferences.KeyAuthToken, res.Token),
		preferences.SetOp(preferences.KeyUser, string(raw)),
	)
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.setLocked(models.AuthenticatedAs(res.User), res.Token)
	return nil
}

// Logout ends the session locally even when the server call or the store
// fails; the store error is returned.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.api.LogoutUser(ctx); err != nil {
		s.log.Warn(ctx, "logout request failed", "error", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.store.Commit(ctx,
		preferences.RemoveOp(preferences.KeyAuthToken),
		preferences.RemoveOp(preferences.KeyUser),
	)

	s.mu.Lock()
	s.epoch++
	s.setLocked(models.Unauthenticated(), "")
	s.mu.Unlock()

	if err != nil {
		s.log.Error(ctx, "failed to clear persisted session", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info(ctx, "logged out")
	return nil
}

// UpdateUser persists u and replaces the session user. u must be the
// signed-in user; a login or logout that lands first makes it stale.
func (s *Session) UpdateUser(ctx context.Context, u models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !s.state.IsAuthenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	if s.state.User.ID != u.ID {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUserMismatch, u.ID)
	}
	epoch := s.epoch
	s.mu.Unlock()

	if err := s.store.Set(ctx, preferences.KeyUser, string(raw)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return ErrUserMismatch
	}
	s.epoch++
	s.setLocked(models.AuthenticatedAs(u), s.token)
	return nil
}

func (s *Session) Subscribe() (<-chan models.AuthState, func()) {
	ch := make(chan models.AuthState, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Session) Diagnostics() <-chan Diagnostic {
	return s.diags
}

// setLocked replaces the state and fans it out to subscribers. s.mu must be
// held.
func (s *Session) setLocked(st models.AuthState, token string) {
	s.state = st
	s.token = token
	if !st.Loading {
		select {
		case <-s.resolved:
		default:
			close(s.resolved)
		}
	}
	for _, ch := range s.subs {
		offerLatest(ch, cloneState(st))
	}
}

func (s *Session) publishLocked(d Diagnostic) {
	offerLatest(s.diags, d)
}

// offerLatest sends v without blocking. When ch is full the oldest queued
// value is dropped to make room. Callers serialize sends with s.mu.
func offerLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func cloneState(st models.AuthState) models.AuthState {
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}
