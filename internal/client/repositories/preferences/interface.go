package preferences

import "context"

// Well-known keys.
const (
	KeyAuthToken = "auth_token"
	KeyUser      = "user"
)

// Write is one element of an atomic batch: set Key to Value, or remove Key
// when Remove is true.
type Write struct {
	Key    string
	Value  string
	Remove bool
}

func SetOp(key, value string) Write { return Write{Key: key, Value: value} }
func RemoveOp(key string) Write     { return Write{Key: key, Remove: true} }

// Store is the preference store contract.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	// Commit applies writes in order; either all of them land or none do.
	Commit(ctx context.Context, writes ...Write) error
	Close() error
}
