// Package extension moves LilyPond values across a module boundary as
// a closed vocabulary of eight tagged value kinds. Scalars cross
// losslessly; embedded sub-language values (Scheme, markup, music)
// cross as canonical fragment text and are reconstructed by reparsing.
//
// Conversion never fails: a fragment that does not reparse degrades to
// its raw text as a string value, flagged with a diagnostic rather
// than an error. All conversions are pure; independent blocks may be
// converted concurrently.
package extension
