package ly

// Value is one typed LilyPond value: a scalar, an identifier
// reference, or a fragment of one of the embedded sub-languages.
type Value interface {
	value()
}

// String is a double-quoted string value.
type String string

func (String) value() {}

// Number is a plain numeric value.
type Number float64

func (Number) value() {}

// Bool is a boolean value, written ##t / ##f.
type Bool bool

func (Bool) value() {}

// Identifier is a reference to a named value, written \name.
type Identifier string

func (Identifier) value() {}

// Unit is a number with a unit suffix, e.g. 2\cm. It is a derived
// numeric value with no extension-bridge variant of its own.
type Unit struct {
	Amount float64
	Name   string
}

func (Unit) value() {}

// Scheme is an embedded Scheme expression, written #datum.
type Scheme struct {
	Expr SchemeExpr
}

func (Scheme) value() {}

// Markup is an embedded markup tree, written \markup node.
type Markup struct {
	Body MarkupNode
}

func (Markup) value() {}

// MarkupList is an embedded markup list, written \markuplist { ... }.
type MarkupList struct {
	Items []MarkupNode
}

func (MarkupList) value() {}

// Music is an embedded music sequence, written { ... }.
type Music struct {
	Body *MusicSeq
}

func (Music) value() {}

// SchemeExpr is one Scheme datum.
type SchemeExpr interface {
	schemeExpr()
}

// SchemeSymbol is a bare Scheme symbol.
type SchemeSymbol string

func (SchemeSymbol) schemeExpr() {}

// SchemeNumber is a Scheme number.
type SchemeNumber float64

func (SchemeNumber) schemeExpr() {}

// SchemeString is a Scheme string literal.
type SchemeString string

func (SchemeString) schemeExpr() {}

// SchemeBool is a Scheme boolean, written #t / #f.
type SchemeBool bool

func (SchemeBool) schemeExpr() {}

// SchemeQuote is a quoted datum, written 'datum.
type SchemeQuote struct {
	Expr SchemeExpr
}

func (SchemeQuote) schemeExpr() {}

// SchemeList is a parenthesized list of data.
type SchemeList []SchemeExpr

func (SchemeList) schemeExpr() {}

// MarkupNode is one node of a markup tree.
type MarkupNode interface {
	markupNode()
}

// MarkupText is one word or quoted string of markup text.
type MarkupText string

func (MarkupText) markupNode() {}

// MarkupCommand is a \name markup command with its argument nodes.
type MarkupCommand struct {
	Name string
	Args []MarkupNode
}

func (MarkupCommand) markupNode() {}

// MarkupLine is a braced group of markup nodes.
type MarkupLine []MarkupNode

func (MarkupLine) markupNode() {}

// MusicNode is one event of a music sequence.
type MusicNode interface {
	musicNode()
}

// Note is one pitched event. Octave counts apostrophes (positive) or
// commas (negative) relative to the unmarked octave. Duration is the
// written denominator ("4", "8", ...; empty means inherited).
type Note struct {
	Pitch    string
	Octave   int
	Duration string
	Dots     int
}

func (Note) musicNode() {}

// Rest is one rest event.
type Rest struct {
	Duration string
	Dots     int
}

func (Rest) musicNode() {}

// MusicCommand is a \name event inside music, e.g. \break.
type MusicCommand struct {
	Name string
}

func (MusicCommand) musicNode() {}

// MusicSeq is a braced sequence of events; sequences nest.
type MusicSeq struct {
	Events []MusicNode
}

func (*MusicSeq) musicNode() {}

// OutputKind names one output definition block kind.
type OutputKind string

// The four output definition kinds.
const (
	KindHeader OutputKind = "header"
	KindPaper  OutputKind = "paper"
	KindLayout OutputKind = "layout"
	KindMidi   OutputKind = "midi"
)

// AllowsContexts reports whether the block kind permits nested
// \context blocks. Only layout and midi do.
func (k OutputKind) AllowsContexts() bool {
	return k == KindLayout || k == KindMidi
}

// Assignment is one name = value binding.
type Assignment struct {
	Name  string
	Value Value
}

func (Assignment) contextItem() {}

// OutputDef is one named configuration block: an ordered assignment
// list plus, for layout and midi blocks, nested context blocks.
type OutputDef struct {
	Kind        OutputKind
	Assignments []Assignment
	Contexts    []ContextBlock
}

// ContextBlock is an ordered list of context modification items.
type ContextBlock struct {
	Items []ContextItem
}

// ContextItem is one modification inside a \context block.
type ContextItem interface {
	contextItem()
}

// ContextRef names the context being modified, e.g. \Score.
type ContextRef struct {
	Name string
}

func (ContextRef) contextItem() {}

// Consists adds an engraver component, e.g. \consists "Span_arpeggio_engraver".
type Consists struct {
	Name string
}

func (Consists) contextItem() {}

// Remove removes an engraver component, e.g. \remove "Bar_number_engraver".
type Remove struct {
	Name string
}

func (Remove) contextItem() {}

// PropertyPath is a dotted property path split into its segments.
type PropertyPath []string

// Set is a \set path = value item.
type Set struct {
	Path  PropertyPath
	Value Value
}

func (Set) contextItem() {}

// Override is an \override path = value item.
type Override struct {
	Path  PropertyPath
	Value Value
}

func (Override) contextItem() {}

// Unset is an \unset path item.
type Unset struct {
	Path PropertyPath
}

func (Unset) contextItem() {}

// Revert is a \revert path item.
type Revert struct {
	Path PropertyPath
}

func (Revert) contextItem() {}

// File is one parsed LilyPond source unit: top-level assignments and
// output definition blocks, in document order.
type File struct {
	Assignments []Assignment
	OutputDefs  []*OutputDef
}
