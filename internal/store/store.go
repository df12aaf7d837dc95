// Package store holds the key/value primitives the workspace persists into.
// Each backend behaves like browser local storage: string keys, string
// values, whole-value reads and writes.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Storage is a durable string key/value store.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
