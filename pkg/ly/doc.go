// Package ly implements a compact typed AST for LilyPond source, a
// recursive-descent parser for it, and a canonical printer.
//
// Three embedded sub-languages are modeled with their own node
// kinds: Scheme expressions (#...), markup trees (\markup), and
// music sequences ({ ... }). The printer is the single source of
// fragment text crossing module boundaries: whatever it emits, the
// parser accepts back.
package ly
