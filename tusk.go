// Package tusk converts MEI music documents toward LilyPond. It wraps
// the typed MEI parser, the validation walker, and the header
// derivation into one document-level API.
package tusk

import (
	"fmt"
	"io"

	"github.com/sonovice/tusk-go/errors"
	"github.com/sonovice/tusk-go/pkg/mei"
)

// Document wraps a parsed MEI tree with convenience methods.
type Document struct {
	root *mei.Element
}

// Parse parses an MEI document from r with default options.
func Parse(r io.Reader) (*Document, error) {
	return ParseWithOptions(r, NewOptions())
}

// ParseWithOptions parses an MEI document with explicit configuration.
func ParseWithOptions(r io.Reader, opts Options) (*Document, error) {
	if r == nil {
		return nil, errors.DiagnosticList{errors.New(errors.ErrXMLParse, "nil reader", "")}
	}
	resolved, err := opts.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("parse options: %w", err)
	}
	root, err := mei.Parse(r, resolved.parseOptions...)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// Root returns the document's root element.
func (d *Document) Root() *mei.Element {
	if d == nil {
		return nil
	}
	return d.root
}

// Validate walks the tree and returns the collected diagnostics as an
// error, or nil when the document is clean.
func (d *Document) Validate() error {
	if d == nil || d.root == nil {
		return errors.DiagnosticList{errors.New(errors.ErrNoRoot, "document not loaded", "")}
	}
	diags := mei.Validate(d.root)
	if len(diags) == 0 {
		return nil
	}
	return diags
}

// EnsureIDs assigns a fresh xml:id to every element missing one and
// returns the number of identifiers assigned.
func (d *Document) EnsureIDs() int {
	if d == nil {
		return 0
	}
	return mei.EnsureIDs(d.root)
}

// WriteXML re-serializes the document as indented MEI.
func (d *Document) WriteXML(w io.Writer) error {
	if d == nil || d.root == nil {
		return errors.DiagnosticList{errors.New(errors.ErrNoRoot, "document not loaded", "")}
	}
	return mei.WriteXML(w, d.root)
}
