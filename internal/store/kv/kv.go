// Package kv is the string-keyed blob storage behind the document store. It
// plays the part browser local storage plays for a web client.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMulti writes a batch of entries. Redis applies it in one MULTI/EXEC.
	// File stages every entry before renaming any, so a failed write leaves
	// the old values; a rename that fails partway keeps the entries already
	// renamed.
	SetMulti(ctx context.Context, entries map[string][]byte) error
	Close() error
}
