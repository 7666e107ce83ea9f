package storage

import (
	"context"
	"errors"
)

var ErrNilDB = errors.New("storage: nil db")

// KV is a string key-value store. Set on a single key is atomic; nothing
// else is promised.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
