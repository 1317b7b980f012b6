package bindables

import "github.com/joeycumines/logiface"

type options struct {
	logger    *logiface.Logger[logiface.Event]
	stepper   Stepper
	batchSize int
}

// Option configures a Signal at creation.
type Option func(*options)

// WithLogger routes listener panics and use-after-destroy reports to l.
// A nil logger (the default) disables logging.
func WithLogger(l *logiface.Logger[logiface.Event]) Option {
	return func(o *options) { o.logger = l }
}

// WithStepper sets the host scheduler primitive deferred fires yield on
// between batches.
func WithStepper(s Stepper) Option {
	return func(o *options) {
		if s != nil {
			o.stepper = s
		}
	}
}

// WithDeferredBatchSize sets the default listener count per deferred batch,
// used when FireDeferred is called with a batch size <= 0.
func WithDeferredBatchSize(n int) Option {
	return func(o *options) { o.batchSize = n }
}

func resolveOptions(opts []Option) *options {
	cfg := &options{stepper: goschedStepper{}}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	return cfg
}
