// Package localstore is the client's durable storage: a small key-value
// table in a sqlite database. The session token lives here; everything else
// the client shows is re-fetched from the server.
package localstore

import "context"

// Store is an opaque key-value store. Get returns "" (and no error) for an
// absent key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
