package tusk

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sonovice/tusk-go/pkg/mei"
)

type intOption struct {
	value int
	set   bool
}

func (o intOption) resolved() int {
	if !o.set {
		return 0
	}
	return o.value
}

// Options configures document parsing.
type Options struct {
	logger      *zap.Logger
	maxDepth    intOption
	maxAttrs    intOption
	maxTextSize intOption
}

type resolvedOptions struct {
	parseOptions []mei.ParseOption
	limits       xmlParseLimits
}

// NewOptions returns a default, valid options value.
func NewOptions() Options {
	return Options{}
}

// Validate validates option values.
func (o Options) Validate() error {
	_, err := o.withDefaults()
	return err
}

// WithLogger sets the logger used to report skipped unknown tags and
// attributes during parsing.
func (o Options) WithLogger(logger *zap.Logger) Options {
	o.logger = logger
	return o
}

// WithMaxDepth sets the XML max nesting depth limit (0 uses default).
func (o Options) WithMaxDepth(value int) Options {
	o.maxDepth = intOption{value: value, set: true}
	return o
}

// WithMaxAttrs sets the XML max attributes limit (0 uses default).
func (o Options) WithMaxAttrs(value int) Options {
	o.maxAttrs = intOption{value: value, set: true}
	return o
}

// WithMaxTextSize sets the XML max text run size limit (0 uses default).
func (o Options) WithMaxTextSize(value int) Options {
	o.maxTextSize = intOption{value: value, set: true}
	return o
}

func (o Options) withDefaults() (resolvedOptions, error) {
	limits, err := resolveXMLParseLimits(
		o.maxDepth.resolved(),
		o.maxAttrs.resolved(),
		o.maxTextSize.resolved(),
	)
	if err != nil {
		return resolvedOptions{}, fmt.Errorf("xml limits: %w", err)
	}

	parseOpts := []mei.ParseOption{
		mei.WithReaderOptions(limits.options()...),
	}
	if o.logger != nil {
		parseOpts = append(parseOpts, mei.WithLogger(o.logger))
	}
	return resolvedOptions{
		parseOptions: parseOpts,
		limits:       limits,
	}, nil
}
