package bus

import "go.uber.org/zap"

type options struct {
	name   string
	logger *zap.Logger
}

type Option func(*options)

// WithName labels the channel in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger replaces the package logger. The channel name is added as a field.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
