package extension

import (
	"github.com/sonovice/tusk-go/errors"
	"github.com/sonovice/tusk-go/pkg/ly"
)

// Kind tags one extension value variant.
type Kind string

// The closed set of extension value kinds.
const (
	KindString     Kind = "string"
	KindNumber     Kind = "number"
	KindBool       Kind = "bool"
	KindIdentifier Kind = "identifier"
	KindScheme     Kind = "scheme"
	KindMarkup     Kind = "markup"
	KindMarkupList Kind = "markup-list"
	KindMusic      Kind = "music"
)

// Value is one tagged extension value. Text carries the string or
// identifier payload for scalar kinds and the canonical fragment text
// for sub-language kinds; Num and Bool carry the numeric and boolean
// payloads.
type Value struct {
	Kind Kind
	Text string
	Num  float64
	Bool bool
}

// String builds a string extension value.
func String(s string) Value { return Value{Kind: KindString, Text: s} }

// Number builds a numeric extension value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Bool builds a boolean extension value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Identifier builds an identifier-reference extension value.
func Identifier(name string) Value { return Value{Kind: KindIdentifier, Text: name} }

// SchemeFragment wraps canonical Scheme fragment text.
func SchemeFragment(text string) Value { return Value{Kind: KindScheme, Text: text} }

// MarkupFragment wraps canonical markup fragment text.
func MarkupFragment(text string) Value { return Value{Kind: KindMarkup, Text: text} }

// MarkupListFragment wraps canonical markup-list fragment text.
func MarkupListFragment(text string) Value { return Value{Kind: KindMarkupList, Text: text} }

// MusicFragment wraps canonical music fragment text.
func MusicFragment(text string) Value { return Value{Kind: KindMusic, Text: text} }

// FromValue converts a LilyPond value to extension form. The
// conversion is total: scalars map to their matching kind, embedded
// sub-language values are printed to canonical fragment text, and a
// unit value, which has no kind of its own, degrades to a string of
// its printed form.
func FromValue(v ly.Value) Value {
	switch v := v.(type) {
	case ly.String:
		return String(string(v))
	case ly.Number:
		return Number(float64(v))
	case ly.Bool:
		return Bool(bool(v))
	case ly.Identifier:
		return Identifier(string(v))
	case ly.Scheme:
		return SchemeFragment(ly.FormatValue(v))
	case ly.Markup:
		return MarkupFragment(ly.FormatValue(v))
	case ly.MarkupList:
		return MarkupListFragment(ly.FormatValue(v))
	case ly.Music:
		return MusicFragment(ly.FormatValue(v))
	default:
		// ly.Unit and any future value kind.
		return String(ly.FormatValue(v))
	}
}

// ToValue converts an extension value back to a LilyPond value.
// Scalar kinds map back losslessly. Fragment kinds are reconstructed
// by reparsing their text; a fragment that does not reparse degrades
// to a string of its raw text, reported in the returned diagnostics.
func ToValue(v Value) (ly.Value, []errors.Diagnostic) {
	switch v.Kind {
	case KindString:
		return ly.String(v.Text), nil
	case KindNumber:
		return ly.Number(v.Num), nil
	case KindBool:
		return ly.Bool(v.Bool), nil
	case KindIdentifier:
		return ly.Identifier(v.Text), nil
	case KindScheme, KindMarkup, KindMarkupList, KindMusic:
		return reparseFragment(v.Text)
	default:
		return ly.String(v.Text), []errors.Diagnostic{
			errors.Newf(errors.ErrDegradedValue, "", "unknown extension value kind %q", v.Kind),
		}
	}
}

// reparseFragment reconstructs a fragment by assigning it to a
// throwaway name and running the result through the full parser. This
// reuses the one tested parser instead of a second fragment-only
// entry point.
func reparseFragment(text string) (ly.Value, []errors.Diagnostic) {
	file, err := ly.ParseString("fragmentValue = " + text)
	if err != nil || len(file.Assignments) != 1 || len(file.OutputDefs) != 0 {
		msg := "fragment has trailing content"
		if err != nil {
			msg = err.Error()
		}
		return ly.String(text), []errors.Diagnostic{
			errors.Newf(errors.ErrDegradedValue, "", "fragment %q did not reparse: %s", text, msg),
		}
	}
	return file.Assignments[0].Value, nil
}
