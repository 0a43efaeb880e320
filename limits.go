package tusk

import (
	"cmp"
	"fmt"

	"github.com/sonovice/tusk-go/pkg/meixml"
)

const (
	defaultXMLMaxDepth    = 256
	defaultXMLMaxAttrs    = 256
	defaultXMLMaxTextSize = 4 << 20
)

type xmlParseLimits struct {
	maxDepth    int
	maxAttrs    int
	maxTextSize int
}

func resolveXMLParseLimits(maxDepth, maxAttrs, maxTextSize int) (xmlParseLimits, error) {
	if maxDepth < 0 {
		return xmlParseLimits{}, fmt.Errorf("xml max depth must be >= 0")
	}
	if maxAttrs < 0 {
		return xmlParseLimits{}, fmt.Errorf("xml max attrs must be >= 0")
	}
	if maxTextSize < 0 {
		return xmlParseLimits{}, fmt.Errorf("xml max text size must be >= 0")
	}
	return xmlParseLimits{
		maxDepth:    defaultXMLLimit(maxDepth, defaultXMLMaxDepth),
		maxAttrs:    defaultXMLLimit(maxAttrs, defaultXMLMaxAttrs),
		maxTextSize: defaultXMLLimit(maxTextSize, defaultXMLMaxTextSize),
	}, nil
}

func (l xmlParseLimits) options() []meixml.Option {
	return []meixml.Option{
		meixml.MaxDepth(defaultXMLLimit(l.maxDepth, defaultXMLMaxDepth)),
		meixml.MaxAttrs(defaultXMLLimit(l.maxAttrs, defaultXMLMaxAttrs)),
		meixml.MaxTextSize(defaultXMLLimit(l.maxTextSize, defaultXMLMaxTextSize)),
	}
}

func defaultXMLLimit(value, fallback int) int {
	return cmp.Or(value, fallback)
}
