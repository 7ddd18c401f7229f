package features

// DefaultSentinel is substituted for any base lookup outside the sequence.
const DefaultSentinel = "N"

// StrandFeatures holds the bases at fixed offsets in sequence order.
type StrandFeatures struct {
	Plus1, Minus1 string
	Plus2, Minus2 string
	Plus3, Minus3 string
}

// StrandNeighbors returns strand features for every position of bases.
func StrandNeighbors(bases []string, sentinel string) []StrandFeatures {
	seq := sequence{bases: bases, sentinel: orDefault(sentinel)}
	out := make([]StrandFeatures, len(bases))
	for i := range out {
		pos := i + 1
		out[i] = StrandFeatures{
			Plus1:  seq.base(pos + 1),
			Minus1: seq.base(pos - 1),
			Plus2:  seq.base(pos + 2),
			Minus2: seq.base(pos - 2),
			Plus3:  seq.base(pos + 3),
			Minus3: seq.base(pos - 3),
		}
	}
	return out
}

// sequence resolves 1-based positions to bases with sentinel fallback.
type sequence struct {
	bases    []string
	sentinel string
}

func (s sequence) base(pos int) string {
	if pos < 1 || pos > len(s.bases) {
		return s.sentinel
	}
	return s.bases[pos-1]
}

func (s sequence) inRange(pos int) bool {
	return pos >= 1 && pos <= len(s.bases)
}

func orDefault(sentinel string) string {
	if sentinel == "" {
		return DefaultSentinel
	}
	return sentinel
}
