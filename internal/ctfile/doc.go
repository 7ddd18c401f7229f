// Package ctfile reads connectivity-table (CT) files produced by RNA folding
// tools.
//
// Each data line carries `index base prev next partner strand_id`. Header
// lines (first character a letter) and blank lines are skipped. Lines that
// fail the field-count or integer checks are reported as Rejected and never
// abort the parse, so a damaged file only shrinks the record count.
package ctfile
