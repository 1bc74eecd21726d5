// Package cli provides the interactive VitalSync terminal client.
//
// It wires configuration, the preference database, the mock API, the
// session and the services, then runs a REPL where each command navigates
// the same routes the web shell serves. The session is bootstrapped on
// start, so a previous login is restored without asking for credentials.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends.
package cli
