// Package mei implements a typed element tree for MEI documents, a
// streaming mixed-content parser that builds it, and a diagnostic
// validation walker over it.
//
// The vocabulary is table-driven: each element kind declares its
// legal children and recognized attributes in one schema table, and
// the parser dispatches by (parent, tag) lookup instead of
// per-element code. Unknown children and attributes are tolerated
// for forward compatibility.
package mei
