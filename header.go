package tusk

import (
	"strings"

	"github.com/sonovice/tusk-go/pkg/ly"
	"github.com/sonovice/tusk-go/pkg/mei"
)

// Header derives a LilyPond \header block from the document's
// metadata header: the title statement supplies title, composer, poet
// (from the lyricist), and arranger; the publication date becomes the
// copyright line. Returns nil when the document carries no metadata.
func (d *Document) Header() *ly.OutputDef {
	if d == nil || d.root == nil {
		return nil
	}
	head := d.root.FirstChild(mei.TagMEIHead)
	if head == nil {
		return nil
	}

	def := &ly.OutputDef{Kind: ly.KindHeader}
	add := func(name string, el *mei.Element) {
		text := strings.Join(strings.Fields(el.Text()), " ")
		if text == "" {
			return
		}
		def.Assignments = append(def.Assignments, ly.Assignment{Name: name, Value: ly.String(text)})
	}

	fileDesc := head.FirstChild(mei.TagFileDesc)
	titleStmt := fileDesc.FirstChild(mei.Tag("titleStmt"))
	add("title", titleStmt.FirstChild(mei.TagTitle))
	add("composer", titleStmt.FirstChild(mei.Tag("composer")))
	add("poet", titleStmt.FirstChild(mei.Tag("lyricist")))
	add("arranger", titleStmt.FirstChild(mei.Tag("arranger")))
	if pubStmt := fileDesc.FirstChild(mei.Tag("pubStmt")); pubStmt != nil {
		add("copyright", pubStmt.FirstChild(mei.Tag("date")))
	}

	def.Assignments = append(def.Assignments, ly.Assignment{Name: "tagline", Value: ly.Bool(false)})
	return def
}
