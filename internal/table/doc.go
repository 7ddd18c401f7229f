// Package table assembles per-position feature rows and writes them in one
// of the registered output formats.
//
// Column order is fixed by Columns. File outputs are replaced atomically
// under an exclusive lock on the destination, so concurrent writers never
// interleave and a rerun on identical input produces identical bytes.
package table
