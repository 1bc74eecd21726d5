package models

// Phase is the bootstrap/route-guard state derived from AuthState.
type Phase int

const (
	PhaseChecking Phase = iota
	PhaseAuthenticated
	PhaseUnauthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseChecking:
		return "checking"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// AuthState is the session snapshot observed by the router and views.
// Loading is true only while the bootstrap check is in flight.
type AuthState struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	User            *User  `json:"user"`
	Loading         bool   `json:"loading"`
	Error           string `json:"error,omitempty"`
}

// InitialAuthState is the state at process start: not authenticated and
// waiting for bootstrap.
func InitialAuthState() AuthState {
	return AuthState{Loading: true}
}

// AuthenticatedAs returns a resolved, authenticated state for u.
func AuthenticatedAs(u User) AuthState {
	return AuthState{IsAuthenticated: true, User: &u}
}

// Unauthenticated returns a resolved, logged-out state.
func Unauthenticated() AuthState {
	return AuthState{}
}

func (s AuthState) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseChecking
	case s.IsAuthenticated:
		return PhaseAuthenticated
	default:
		return PhaseUnauthenticated
	}
}

// Valid reports whether the IsAuthenticated ⇒ User≠nil invariant holds.
func (s AuthState) Valid() bool {
	return !s.IsAuthenticated || s.User != nil
}
