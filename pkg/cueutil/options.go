// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize is the default maximum size of a parsed source (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

const defaultFilename = "<input>"

type (
	options struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}

	// Option configures parsing and validation.
	Option func(*options)
)

func newOptions(opts []Option) options {
	o := options{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
		filename:    defaultFilename,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.filename == "" {
		o.filename = defaultFilename
	}
	return o
}

// WithMaxFileSize sets the maximum accepted source size in bytes.
func WithMaxFileSize(size int64) Option {
	return func(o *options) {
		o.maxFileSize = size
	}
}

// WithConcrete sets whether every value must be concrete after unification.
// Config files leave optional fields unset and parse with concrete=false.
func WithConcrete(concrete bool) Option {
	return func(o *options) {
		o.concrete = concrete
	}
}

// WithFilename sets the name reported in error messages.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}
