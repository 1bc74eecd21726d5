// Package session owns the authentication lifecycle of the client: the
// AuthState observed by the router and views, the bootstrap check that
// restores a persisted login, and the login/register/logout transitions.
//
// The session is an explicit value. Front ends construct one with New and
// hand it to consumers behind the Manager interface.
//
//	CHECKING ──bootstrap──► AUTHENTICATED
//	    │                        │ logout
//	    └────────────────────────┴──────► UNAUTHENTICATED ──login──► AUTHENTICATED
//
// Bootstrap never fails: a store error leaves the session logged out, and
// the cause is logged, recorded in AuthState.Error and published on
// Diagnostics.
package session
