package repository

import "time"

type openOptions struct {
	busyTimeout time.Duration
	lockTimeout time.Duration
}

// Option applies a configuration option to Open.
type Option func(*openOptions)

// WithBusyTimeout sets how long sqlite waits on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *openOptions) {
		if d > 0 {
			o.busyTimeout = d
		}
	}
}

// WithLockTimeout sets how long bolt waits for the file lock on open.
func WithLockTimeout(d time.Duration) Option {
	return func(o *openOptions) {
		if d > 0 {
			o.lockTimeout = d
		}
	}
}
