// Package common defines shared sentinel errors and small byte helpers used
// across VitalSync client and web shell layers. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Token errors (invalid, malformed or signed with another key).
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingToken = errors.New("missing token")
)
