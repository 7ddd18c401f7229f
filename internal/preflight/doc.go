// Package preflight provides readiness checks for the filesystem paths and
// settings foldfeat depends on.
//
// The "foldfeat preflight" command runs RunAll and prints every result. The
// extract and batch commands call CheckInputs before reading sequence files
// so a missing or unreadable file is reported by name instead of as a parse
// failure.
package preflight
