package mei

import "strings"

// Tag is an MEI element name.
type Tag string

// Tags referenced outside the schema table.
const (
	TagMEI      Tag = "mei"
	TagMEIHead  Tag = "meiHead"
	TagFileDesc Tag = "fileDesc"
	TagTitle    Tag = "title"
	TagMusic    Tag = "music"
	TagMeasure  Tag = "measure"
	TagNote     Tag = "note"
	TagRef      Tag = "ref"
	TagP        Tag = "p"
)

// Attr is one recognized attribute on an element.
type Attr struct {
	Name  string
	Value string
}

// Child is one mixed-content unit of an element: either a Text run
// or a nested *Element. Children preserve document order exactly.
type Child interface {
	child()
}

// Text is a non-whitespace text run inside mixed content.
type Text string

func (Text) child() {}

// Element is one node of the typed MEI tree. Elements are built once
// by Parse and treated as immutable afterward; EnsureIDs is the only
// sanctioned mutation.
type Element struct {
	Tag      Tag
	Attrs    []Attr
	Children []Child
	Line     int
	Column   int
}

func (*Element) child() {}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Elements returns the element children in document order, ignoring
// text runs.
func (e *Element) Elements() []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// FirstChild returns the first element child with the given tag.
func (e *Element) FirstChild(tag Tag) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Tag == tag {
			return el
		}
	}
	return nil
}

// Find returns the first descendant (depth-first, document order)
// with the given tag, or nil.
func (e *Element) Find(tag Tag) *Element {
	if e == nil {
		return nil
	}
	if e.Tag == tag {
		return e
	}
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			if found := el.Find(tag); found != nil {
				return found
			}
		}
	}
	return nil
}

// Text returns the concatenated text content of the element and its
// descendants, in document order.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	e.appendText(&sb)
	return sb.String()
}

func (e *Element) appendText(sb *strings.Builder) {
	for _, c := range e.Children {
		switch c := c.(type) {
		case Text:
			sb.WriteString(string(c))
		case *Element:
			c.appendText(sb)
		}
	}
}
