package mei

import "github.com/google/uuid"

// EnsureIDs assigns a fresh xml:id to every element that lacks one
// and returns the number of ids assigned. MEI tooling conventionally
// prefixes generated ids so they remain valid XML names.
func EnsureIDs(root *Element) int {
	if root == nil {
		return 0
	}
	assigned := 0
	if _, ok := root.Attr("xml:id"); !ok {
		root.Attrs = append(root.Attrs, Attr{Name: "xml:id", Value: "m-" + uuid.NewString()})
		assigned++
	}
	for _, child := range root.Children {
		if el, ok := child.(*Element); ok {
			assigned += EnsureIDs(el)
		}
	}
	return assigned
}
