// Package store is the persistence boundary. A Store is opened once at
// startup; callers work through a Handle, which executes typed commands
// and groups them into transactions.
package store

import (
	"context"
	"errors"
	"log/slog"
)

// ErrUnsupportedOperation is returned for an unknown Op or a Command whose
// record does not match its Op.
var ErrUnsupportedOperation = errors.New("store: unsupported operation")

type Store interface {
	// Init ensures the schema or storage keys exist. Calling it again is a no-op.
	Init(ctx context.Context) error
	Handle(ctx context.Context) (Handle, error)
	Close() error
}

type Handle interface {
	Execute(ctx context.Context, cmd Command) (Result, error)
	// WithTx runs fn against a handle whose writes commit together when fn
	// returns nil and are discarded otherwise. fn must only use the handle it
	// is given.
	WithTx(ctx context.Context, fn func(Handle) error) error
}

// Observer is notified once per executed command.
type Observer interface {
	ObserveCommand(driver, op, result string)
}

type Option func(*options)

type options struct {
	observer Observer
	logger   *slog.Logger
}

func WithObserver(o Observer) Option {
	return func(opts *options) { opts.observer = o }
}

func WithLogger(l *slog.Logger) Option {
	return func(opts *options) { opts.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) observe(driver string, op Op, err error) {
	if o.observer == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	o.observer.ObserveCommand(driver, op.String(), result)
}
