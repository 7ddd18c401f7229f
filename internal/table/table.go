package table

import (
	"fmt"

	"foldfeat/internal/features"
)

// Columns is the header of every feature table, in output order.
var Columns = []string{
	"base",
	"strand_+1", "strand_-1",
	"strand_+2", "strand_-2",
	"strand_+3", "strand_-3",
	"cross_+1", "cross_-1",
	"cross_+2", "cross_-2",
	"cross_strand",
	"cross_+3", "cross_-3",
	"role",
}

// Row is one position of the feature table.
type Row struct {
	Base   string
	Strand features.StrandFeatures
	Cross  features.CrossFeatures
	Role   features.Role
}

// Values returns the row's fields in Columns order.
func (r Row) Values() []string {
	return []string{
		r.Base,
		r.Strand.Plus1, r.Strand.Minus1,
		r.Strand.Plus2, r.Strand.Minus2,
		r.Strand.Plus3, r.Strand.Minus3,
		r.Cross.Plus1, r.Cross.Minus1,
		r.Cross.Plus2, r.Cross.Minus2,
		r.Cross.Strand,
		r.Cross.Plus3, r.Cross.Minus3,
		r.Role.Code(),
	}
}

// Assemble merges bases, strand features and the traversal result into rows.
func Assemble(bases []string, strand []features.StrandFeatures, tr features.Traversal) ([]Row, error) {
	n := len(bases)
	if len(strand) != n || len(tr.Roles) != n || len(tr.Cross) != n {
		return nil, fmt.Errorf("assemble: length mismatch (bases=%d strand=%d roles=%d cross=%d)",
			n, len(strand), len(tr.Roles), len(tr.Cross))
	}
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{
			Base:   bases[i],
			Strand: strand[i],
			Cross:  tr.Cross[i],
			Role:   tr.Roles[i],
		}
	}
	return rows, nil
}
