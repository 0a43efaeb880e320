package meixml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

var (
	errNilReader      = errors.New("nil XML reader")
	errNoStartElement = errors.New("no start element to skip")
	errDepthExceeded  = errors.New("element nesting depth limit exceeded")
	errTooManyAttrs   = errors.New("attribute count limit exceeded")
	errTextTooLarge   = errors.New("text run size limit exceeded")
)

// EventKind discriminates the events produced by a Reader.
type EventKind uint8

const (
	// EventStartElement is an opening tag with its attributes.
	EventStartElement EventKind = iota
	// EventCharData is a text run between tags.
	EventCharData
	// EventEndElement is a closing tag.
	EventEndElement
)

// Attr is one attribute on a start element. Names from the xml
// namespace keep their prefix ("xml:lang", "xml:id"); all other
// names are local.
type Attr struct {
	Name  string
	Value string
}

// Event is one mixed-content unit: a start tag with attributes, a
// text run, or an end tag.
type Event struct {
	Kind   EventKind
	Name   string
	Attrs  []Attr
	Text   string
	Line   int
	Column int
}

// SyntaxError reports a fatal structural problem in the input stream.
type SyntaxError struct {
	Line   int
	Column int
	Err    error
}

func (e *SyntaxError) Error() string {
	if e == nil {
		return "xml syntax error <nil>"
	}
	return fmt.Sprintf("xml syntax error at line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Reader provides a forward-only XML event stream. The only
// operations consumers need are Next and SkipSubtree.
//
// A Reader is not safe for concurrent use; independent parses use
// independent readers.
type Reader struct {
	dec          *xml.Decoder
	opts         options
	depth        int
	lastLine     int
	lastColumn   int
	lastWasStart bool
}

// NewReader creates a new streaming reader for r.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	if r == nil {
		return nil, errNilReader
	}
	return &Reader{
		dec:  xml.NewDecoder(r),
		opts: buildOptions(opts...),
	}, nil
}

// Next returns the next XML event. Comments, processing
// instructions, and directives are skipped. At end of input Next
// returns io.EOF.
func (r *Reader) Next() (Event, error) {
	if r == nil || r.dec == nil {
		return Event{}, errNilReader
	}
	r.lastWasStart = false

	for {
		tok, err := r.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, r.syntaxError(err)
		}
		line, column := r.dec.InputPos()
		r.lastLine = line
		r.lastColumn = column

		switch tok := tok.(type) {
		case xml.StartElement:
			r.depth++
			if r.depth > r.opts.maxDepth {
				return Event{}, r.syntaxError(errDepthExceeded)
			}
			if len(tok.Attr) > r.opts.maxAttrs {
				return Event{}, r.syntaxError(errTooManyAttrs)
			}
			r.lastWasStart = true
			return Event{
				Kind:   EventStartElement,
				Name:   tok.Name.Local,
				Attrs:  convertAttrs(tok.Attr),
				Line:   line,
				Column: column,
			}, nil

		case xml.EndElement:
			r.depth--
			return Event{
				Kind:   EventEndElement,
				Name:   tok.Name.Local,
				Line:   line,
				Column: column,
			}, nil

		case xml.CharData:
			if len(tok) > r.opts.maxTextSize {
				return Event{}, r.syntaxError(errTextTooLarge)
			}
			return Event{
				Kind:   EventCharData,
				Text:   string(tok),
				Line:   line,
				Column: column,
			}, nil
		}
	}
}

// SkipSubtree skips the current element subtree after a StartElement
// event, consuming input through the matching end tag.
func (r *Reader) SkipSubtree() error {
	if r == nil || r.dec == nil {
		return errNilReader
	}
	if !r.lastWasStart {
		return errNoStartElement
	}
	r.lastWasStart = false
	if err := r.dec.Skip(); err != nil {
		return r.syntaxError(err)
	}
	r.depth--
	return nil
}

// CurrentPos returns the line and column of the most recent token.
func (r *Reader) CurrentPos() (line, column int) {
	if r == nil {
		return 0, 0
	}
	return r.lastLine, r.lastColumn
}

func (r *Reader) syntaxError(err error) error {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return err
	}
	line, column := r.dec.InputPos()
	return &SyntaxError{Line: line, Column: column, Err: err}
}

// Namespace the decoder resolves the reserved xml prefix to.
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

func convertAttrs(attrs []xml.Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		switch a.Name.Space {
		case "xmlns":
			continue
		case "xml", xmlNamespace:
			out = append(out, Attr{Name: "xml:" + a.Name.Local, Value: a.Value})
		default:
			if a.Name.Local == "xmlns" {
				continue
			}
			out = append(out, Attr{Name: a.Name.Local, Value: a.Value})
		}
	}
	return out
}
