// Package dotbracket locates the dot-bracket structure line in a companion
// file and aligns it with the records of a CT file.
//
// Alignment is computed once and never modified afterwards. Symbols are
// addressed 1-based to match CT ordinals.
package dotbracket
