package mei

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/sonovice/tusk-go/errors"
	"github.com/sonovice/tusk-go/pkg/meixml"
)

type parseConfig struct {
	logger     *zap.Logger
	readerOpts []meixml.Option
}

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

// WithLogger sets the logger used to report skipped unknown tags and
// attributes. The default logger discards everything.
func WithLogger(logger *zap.Logger) ParseOption {
	return func(cfg *parseConfig) {
		cfg.logger = logger
	}
}

// WithReaderOptions passes options through to the underlying XML reader.
func WithReaderOptions(opts ...meixml.Option) ParseOption {
	return func(cfg *parseConfig) {
		cfg.readerOpts = append(cfg.readerOpts, opts...)
	}
}

// Parse reads one XML document or fragment from r and builds its
// typed element tree. The root tag must be part of the vocabulary.
//
// Malformed input is fatal and returned as an error. Unknown child
// elements, unrecognized attributes, and text inside non-mixed
// elements are skipped silently; children that are kept preserve
// document order exactly, including text and element interleaving.
func Parse(r io.Reader, opts ...ParseOption) (*Element, error) {
	cfg := parseConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	reader, err := meixml.NewReader(r, cfg.readerOpts...)
	if err != nil {
		return nil, fmt.Errorf("parse mei: %w", err)
	}

	for {
		ev, err := reader.Next()
		if err == io.EOF {
			return nil, errors.DiagnosticList{errors.New(errors.ErrNoRoot, "document has no root element", "")}
		}
		if err != nil {
			return nil, fmt.Errorf("parse mei: %w", err)
		}
		switch ev.Kind {
		case meixml.EventCharData:
			if strings.TrimSpace(ev.Text) != "" {
				return nil, errors.DiagnosticList{
					errors.Newf(errors.ErrXMLParse, "", "text before root element"),
				}
			}
		case meixml.EventStartElement:
			if !Known(Tag(ev.Name)) {
				return nil, errors.DiagnosticList{
					errors.Newf(errors.ErrRootNotDeclared, "/"+ev.Name, "root element %s is not declared", ev.Name),
				}
			}
			return parseElement(reader, ev, &cfg)
		case meixml.EventEndElement:
			return nil, errors.DiagnosticList{
				errors.Newf(errors.ErrXMLParse, "", "end tag before root element"),
			}
		}
	}
}

// parseElement consumes events from the element's start tag through
// its matching end tag and returns the typed node.
func parseElement(reader *meixml.Reader, start meixml.Event, cfg *parseConfig) (*Element, error) {
	tag := Tag(start.Name)
	spec, _ := lookupSpec(tag)

	el := &Element{
		Tag:    tag,
		Attrs:  claimAttrs(spec, tag, start.Attrs, cfg),
		Line:   start.Line,
		Column: start.Column,
	}

	for {
		ev, err := reader.Next()
		if err == io.EOF {
			// The decoder reports unterminated elements itself; this
			// guards against a reader that returns EOF early.
			return nil, fmt.Errorf("parse %s: unexpected end of input", tag)
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", tag, err)
		}

		switch ev.Kind {
		case meixml.EventCharData:
			if strings.TrimSpace(ev.Text) == "" {
				continue
			}
			if !spec.allowsText() {
				cfg.logger.Debug("dropping text in non-mixed element",
					zap.String("tag", string(tag)),
					zap.Int("line", ev.Line))
				continue
			}
			el.Children = append(el.Children, Text(ev.Text))

		case meixml.EventStartElement:
			childTag := Tag(ev.Name)
			if !spec.allowsChild(childTag) || !Known(childTag) {
				cfg.logger.Debug("skipping unrecognized child element",
					zap.String("parent", string(tag)),
					zap.String("tag", ev.Name),
					zap.Int("line", ev.Line))
				if err := reader.SkipSubtree(); err != nil {
					return nil, fmt.Errorf("parse %s: %w", tag, err)
				}
				continue
			}
			child, err := parseElement(reader, ev, cfg)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, child)

		case meixml.EventEndElement:
			return el, nil
		}
	}
}

func claimAttrs(spec *compiledSpec, tag Tag, attrs []meixml.Attr, cfg *parseConfig) []Attr {
	var out []Attr
	for _, a := range attrs {
		if !spec.recognizesAttr(a.Name) {
			cfg.logger.Debug("dropping unrecognized attribute",
				zap.String("tag", string(tag)),
				zap.String("attr", a.Name))
			continue
		}
		out = append(out, Attr{Name: a.Name, Value: a.Value})
	}
	return out
}
