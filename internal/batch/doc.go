// Package batch runs many extraction jobs concurrently.
//
// Jobs come from a TOML manifest or from a directory scan that pairs every
// *.ct file with a sibling *.dot file. Each job owns its output path; plans
// that map two jobs to the same path are rejected before anything runs. A
// failing job is recorded in the Summary and does not stop the others.
package batch
