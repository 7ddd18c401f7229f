// Package features derives per-position feature bundles from a parsed CT
// sequence and its aligned dot-bracket structure.
//
// StrandNeighbors looks at bases around a position in sequence order.
// Traverse runs the two-pointer inward sweep that assigns structural roles
// and fills cross features, the bases around a position's structural
// counterpart. Positions are 1-based throughout; any lookup outside [1, N]
// yields the sentinel base.
package features
