package features

// Role is the structural role assigned to a position by the traversal.
type Role int

const (
	Unresolved Role = iota
	StemPair
	BulgeContinuation
	HairpinLoop
	SingleStrand
)

// Code returns the single-letter code written to feature tables. Unresolved
// positions have an empty code.
func (r Role) Code() string {
	switch r {
	case StemPair:
		return "M"
	case BulgeContinuation:
		return "A"
	case HairpinLoop:
		return "L"
	case SingleStrand:
		return "S"
	default:
		return ""
	}
}

func (r Role) String() string {
	switch r {
	case StemPair:
		return "stem_pair"
	case BulgeContinuation:
		return "bulge_continuation"
	case HairpinLoop:
		return "hairpin_loop"
	case SingleStrand:
		return "single_strand"
	default:
		return "unresolved"
	}
}
