package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies a diagnostic category raised while parsing,
// validating, or bridging a music document.
type Code string

const (
	// ErrXMLParse indicates the MEI document could not be parsed.
	ErrXMLParse Code = "mei-parse-error"
	// ErrNoRoot indicates the document has no root element.
	ErrNoRoot Code = "mei-no-root"
	// ErrRootNotDeclared indicates the root element tag is not part of the vocabulary.
	ErrRootNotDeclared Code = "mei-root-not-declared"
	// ErrDepthExceeded indicates the document nests deeper than the configured limit.
	ErrDepthExceeded Code = "mei-depth-exceeded"

	// ErrRequiredAttributeMissing indicates a required attribute is missing.
	ErrRequiredAttributeMissing Code = "mei-required-attribute-missing"
	// ErrAttributeValueInvalid indicates an attribute value is outside its legal set.
	ErrAttributeValueInvalid Code = "mei-attribute-value-invalid"
	// ErrLanguageInvalid indicates an xml:lang value could not be parsed as a language tag.
	ErrLanguageInvalid Code = "mei-language-invalid"
	// ErrEmptyElement indicates an element that requires content has none.
	ErrEmptyElement Code = "mei-empty-element"

	// ErrDegradedValue indicates an extension fragment did not reparse and
	// was substituted with its lossless fallback representation.
	ErrDegradedValue Code = "ext-degraded-value"
	// ErrPropertyPathInvalid indicates a property path segment contains the path delimiter.
	ErrPropertyPathInvalid Code = "ext-property-path-invalid"

	// ErrLilyPondParse indicates LilyPond source could not be parsed.
	ErrLilyPondParse Code = "ly-parse-error"
)

// Diagnostic describes one finding with a code and optional element
// path and line/column context.
type Diagnostic struct {
	Code    string
	Message string
	Path    string
	Line    int
	Column  int
}

// DiagnosticList is an error that wraps one or more diagnostics.
type DiagnosticList []Diagnostic //nolint:errname // public API name, kept for symmetry with Diagnostic.

// Error returns a compact summary of the diagnostics.
func (l DiagnosticList) Error() string {
	switch len(l) {
	case 0:
		return "no diagnostics"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", l[0].Error(), len(l)-1)
	}
}

// Error formats the diagnostic for display, including code, message, and context.
func (d *Diagnostic) Error() string {
	if d == nil {
		return "diagnostic <nil>"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", d.Code, d.Message))
	if d.Path != "" {
		b.WriteString(fmt.Sprintf(" at %s", d.Path))
	}
	if d.Line > 0 && d.Column > 0 {
		if d.Path == "" {
			b.WriteString(fmt.Sprintf(" at line %d, column %d", d.Line, d.Column))
		} else {
			b.WriteString(fmt.Sprintf(" (line %d, column %d)", d.Line, d.Column))
		}
	}
	return b.String()
}

// New builds a Diagnostic with a code, message, and optional path.
func New(code Code, msg, path string) Diagnostic {
	return Diagnostic{Code: string(code), Message: msg, Path: path}
}

// Newf formats a message and builds a Diagnostic.
func Newf(code Code, path, format string, args ...any) Diagnostic {
	return New(code, fmt.Sprintf(format, args...), path)
}

// AsDiagnostics extracts diagnostics from an error returned by parse or
// validation helpers.
func AsDiagnostics(err error) ([]Diagnostic, bool) {
	list, ok := asDiagnosticList(err)
	if !ok {
		return nil, false
	}
	return []Diagnostic(list), true
}

func asDiagnosticList(err error) (DiagnosticList, bool) {
	if err == nil {
		return nil, false
	}
	var list DiagnosticList
	if errors.As(err, &list) {
		return list, true
	}

	var listPtr *DiagnosticList
	if errors.As(err, &listPtr) && listPtr != nil {
		return *listPtr, true
	}

	return nil, false
}
