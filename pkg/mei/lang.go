package mei

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ParseLanguage parses an xml:lang style value into a language tag.
// BCP 47 parsing is tried first; as a last resort the value is
// matched against language self-names ("Deutsch", "français").
func ParseLanguage(raw string) (language.Tag, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return language.Und, false
	}

	tag, err := language.Parse(value)
	if err == nil {
		return tag, true
	}

	for _, supported := range display.Supported.Tags() {
		if strings.EqualFold(display.Self.Name(supported), value) {
			return supported, true
		}
	}
	return language.Und, false
}

// Language returns the element's xml:lang value as a language tag,
// or language.Und when absent or unparseable.
func (e *Element) Language() language.Tag {
	raw, ok := e.Attr("xml:lang")
	if !ok {
		return language.Und
	}
	tag, ok := ParseLanguage(raw)
	if !ok {
		return language.Und
	}
	return tag
}
