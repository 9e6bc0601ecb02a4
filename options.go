package taylorpoly

import "github.com/rs/zerolog"

// DefaultPlaceholder names the symbol that stands in for the expansion point
// in stored derivatives.
const DefaultPlaceholder = "a"

type options struct {
	logger      zerolog.Logger
	placeholder string
}

type Option func(options) options

func defaultOptions() options {
	return options{
		logger:      zerolog.Nop(),
		placeholder: DefaultPlaceholder,
	}
}

// WithLogger sets the logger that reports each derivative order at debug
// level.
func WithLogger(logger zerolog.Logger) Option {
	return func(o options) options {
		o.logger = logger
		return o
	}
}

// WithPlaceholder sets the preferred placeholder name. A suffixed variant is
// used when the name already occurs in the function or the point.
func WithPlaceholder(name string) Option {
	return func(o options) options {
		if name != "" {
			o.placeholder = name
		}
		return o
	}
}
