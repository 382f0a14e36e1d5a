// Package storage defines the durable key-value store used for cart and
// session state. It is the Go counterpart of origin-scoped browser storage:
// string keys, string values, survives restarts, cleared only explicitly.
package storage

import "context"

// KV is durable string storage. Get reports ok=false when the key is
// absent; absence is not an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
