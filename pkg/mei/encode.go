package mei

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// EncodeXML serializes the element tree back to an XML document,
// preserving child order exactly, including text and element
// interleaving.
func EncodeXML(root *Element) (*etree.Document, error) {
	if root == nil {
		return nil, fmt.Errorf("encode mei: nil element")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	encodeInto(&doc.Element, root)
	return doc, nil
}

// WriteXML writes the element tree as indented XML.
func WriteXML(w io.Writer, root *Element) error {
	if w == nil {
		return fmt.Errorf("encode mei: nil writer")
	}
	doc, err := EncodeXML(root)
	if err != nil {
		return err
	}
	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("encode mei: %w", err)
	}
	return nil
}

func encodeInto(parent *etree.Element, el *Element) {
	node := parent.CreateElement(string(el.Tag))
	for _, a := range el.Attrs {
		node.CreateAttr(a.Name, a.Value)
	}
	for _, child := range el.Children {
		switch child := child.(type) {
		case Text:
			node.CreateText(string(child))
		case *Element:
			encodeInto(node, child)
		}
	}
}
