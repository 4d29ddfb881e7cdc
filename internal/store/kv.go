package store

import (
	"context"
	"errors"
)

// StateKey is the single named record holding the full reservation list.
const StateKey = "reservations"

// ErrNotFound is returned by a KV when the record has never been
// written.
var ErrNotFound = errors.New("record not found")

// KV is the durable key-value boundary. The store writes the whole
// serialized reservation list under one key and reads it back once at
// startup.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
