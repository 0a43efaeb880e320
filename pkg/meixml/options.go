package meixml

const (
	defaultMaxDepth    = 256
	defaultMaxAttrs    = 256
	defaultMaxTextSize = 4 << 20
)

type options struct {
	maxDepth    int
	maxAttrs    int
	maxTextSize int
}

// Option configures a Reader.
type Option func(*options)

// MaxDepth sets the maximum element nesting depth (0 uses the default).
func MaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// MaxAttrs sets the maximum number of attributes per element (0 uses the default).
func MaxAttrs(n int) Option {
	return func(o *options) {
		o.maxAttrs = n
	}
}

// MaxTextSize sets the maximum size of a single text run in bytes (0 uses the default).
func MaxTextSize(n int) Option {
	return func(o *options) {
		o.maxTextSize = n
	}
}

func buildOptions(opts ...Option) options {
	o := options{
		maxDepth:    defaultMaxDepth,
		maxAttrs:    defaultMaxAttrs,
		maxTextSize: defaultMaxTextSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.maxDepth <= 0 {
		o.maxDepth = defaultMaxDepth
	}
	if o.maxAttrs <= 0 {
		o.maxAttrs = defaultMaxAttrs
	}
	if o.maxTextSize <= 0 {
		o.maxTextSize = defaultMaxTextSize
	}
	return o
}
