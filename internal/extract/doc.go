// Package extract wires parsing, alignment, traversal and table writing into
// a single extraction run.
//
// Only unreadable input files are returned as errors. Malformed CT lines, a
// missing or short structure and an empty record set all produce a table
// and a Report marked Degraded.
package extract
