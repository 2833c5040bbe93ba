package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("not found")

// KVStore is the persistent key-value storage that holds the serialized
// progress record. Reads and writes are whole-value.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
