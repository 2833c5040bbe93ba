package testutil

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrQuotaExceeded simulates a storage backend refusing a write.
var ErrQuotaExceeded = errors.New("quota exceeded")

type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// FailingKVStore wraps a key-value store and injects errors. Put calls are
// counted from 1; when FailFrom is > 0 every Put from that call onward fails.
// GetErr, when set, is returned by every Get.
type FailingKVStore struct {
	Inner    kvStore
	FailFrom int32
	Err      error
	GetErr   error

	puts atomic.Int32
}

func (f *FailingKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	return f.Inner.Get(ctx, key)
}

func (f *FailingKVStore) Put(ctx context.Context, key string, value []byte) error {
	n := f.puts.Add(1)
	if f.FailFrom > 0 && n >= f.FailFrom {
		if f.Err != nil {
			return f.Err
		}
		return ErrQuotaExceeded
	}
	return f.Inner.Put(ctx, key, value)
}

// Puts reports how many writes were attempted.
func (f *FailingKVStore) Puts() int {
	return int(f.puts.Load())
}
