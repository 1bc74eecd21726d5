// Package preferences is the key/value preference store the session uses to
// persist the auth token and the serialized user record.
//
// Values are opaque strings. A missing key is not an error: Get reports it
// with ok=false. Commit applies a batch of writes atomically, so the session
// can store (or clear) the token and the user together.
package preferences
