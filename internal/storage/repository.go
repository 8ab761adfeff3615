package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("storage: not found")
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
	ErrEmptyKey      = errors.New("storage: empty key")
)

// KV is a durable string-keyed string store. Get reports a missing key with
// ok == false and a nil error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
