package features

import "foldfeat/internal/dotbracket"

// CrossFeatures holds the bases around a position's structural counterpart.
// Strand is the counterpart's own base.
type CrossFeatures struct {
	Plus1, Minus1 string
	Plus2, Minus2 string
	Strand        string
	Plus3, Minus3 string
}

// Options tunes the traversal.
type Options struct {
	// Sentinel replaces out-of-range lookups. Empty means DefaultSentinel.
	Sentinel string
	// StemEndMargin keeps bracket pairs from being labelled StemPair while
	// forward is within the first StemEndMargin positions or backward within
	// the last StemEndMargin-1. Zero disables the guard.
	StemEndMargin int
}

// Pair is a forward/backward position pair labelled StemPair.
type Pair struct {
	Forward, Backward int
}

// Traversal is the result of one sweep. Roles and Cross are indexed by
// position-1.
type Traversal struct {
	Roles []Role
	Cross []CrossFeatures
	// Pairs lists stem pairs in the order the sweep found them.
	Pairs []Pair
	// Steps counts loop iterations.
	Steps int
	// Ran is false when the alignment had no usable symbols.
	Ran bool
}

// Unresolved reports how many positions carry no role.
func (t Traversal) Unresolved() int {
	count := 0
	for _, role := range t.Roles {
		if role == Unresolved {
			count++
		}
	}
	return count
}

// Traverse sweeps two cursors inward over align and labels every position it
// can. When align does not cover bases the sweep is skipped and every
// position stays Unresolved with sentinel cross features.
func Traverse(bases []string, align dotbracket.Alignment, opts Options) Traversal {
	seq := sequence{bases: bases, sentinel: orDefault(opts.Sentinel)}
	n := len(bases)
	t := Traversal{
		Roles: make([]Role, n),
		Cross: make([]CrossFeatures, n),
	}
	blank := seq.blankCross()
	for i := range t.Cross {
		t.Cross[i] = blank
	}
	if !align.Status.Usable() || align.Len() != n || n == 0 {
		return t
	}
	t.Ran = true

	sw := sweeper{seq: seq, align: align, margin: opts.StemEndMargin, t: &t}
	forward, backward := 1, n
	for forward < backward {
		t.Steps++
		forward, backward = sw.step(forward, backward)
	}
	if forward == backward {
		sw.finish(forward)
	}
	return t
}

type sweeper struct {
	seq    sequence
	align  dotbracket.Alignment
	margin int
	t      *Traversal
}

// step applies the first matching rule to the cursor pair and returns the
// new cursors.
func (s *sweeper) step(forward, backward int) (int, int) {
	fwd, bwd := s.align.At(forward), s.align.At(backward)

	switch {
	case fwd == dotbracket.Open && bwd == dotbracket.Close && s.stemAllowed(forward, backward):
		s.t.Roles[forward-1] = StemPair
		s.t.Roles[backward-1] = StemPair
		s.t.Pairs = append(s.t.Pairs, Pair{Forward: forward, Backward: backward})
		s.cross(forward, backward, true)
		s.cross(backward, forward, true)
		return forward + 1, backward - 1

	case fwd == dotbracket.Unpaired && bwd == dotbracket.Close:
		s.cross(forward, backward, false)
		s.cross(backward, forward, false)
		s.fill(forward, BulgeContinuation)
		s.relabel(forward+1, BulgeContinuation)
		return forward + 1, backward

	case fwd == dotbracket.Open && bwd == dotbracket.Unpaired:
		s.cross(forward, backward, false)
		s.cross(backward, forward, false)
		s.fill(backward, BulgeContinuation)
		s.relabel(backward-1, BulgeContinuation)
		return forward, backward - 1

	case fwd == dotbracket.Unpaired && bwd == dotbracket.Unpaired &&
		forward > s.align.LastOpen && backward < s.align.FirstClose:
		blank := s.seq.blankCross()
		s.t.Cross[forward-1] = blank
		s.t.Cross[backward-1] = blank
		s.fill(forward, HairpinLoop)
		s.fill(backward, HairpinLoop)
		s.relabel(forward+1, HairpinLoop)
		s.relabel(backward-1, HairpinLoop)
		return forward + 1, backward - 1

	case fwd == dotbracket.Unpaired && bwd == dotbracket.Unpaired:
		s.cross(forward, backward, true)
		s.cross(backward, forward, true)
		s.fill(forward, SingleStrand)
		s.fill(backward, SingleStrand)
		s.relabel(forward+1, SingleStrand)
		s.relabel(backward-1, SingleStrand)
		return forward + 1, backward - 1
	}
	return forward + 1, backward - 1
}

// stemAllowed applies the end margin: forward must lie past the first margin
// positions and backward within the last margin-1. A zero margin admits
// every pair.
func (s *sweeper) stemAllowed(forward, backward int) bool {
	if s.margin <= 0 {
		return true
	}
	return forward > s.margin && backward <= len(s.seq.bases)-s.margin+1
}

// finish handles the lone middle position left when the cursors meet. Cross
// features are left as they are; an unlabelled unpaired position closes a
// hairpin, and a lone bracket keeps whatever label it already has.
func (s *sweeper) finish(pos int) {
	if s.t.Roles[pos-1] == Unresolved && s.align.At(pos) == dotbracket.Unpaired {
		s.t.Roles[pos-1] = HairpinLoop
	}
}

// cross fills pos's cross features from the neighbourhood of counterpart.
func (s *sweeper) cross(pos, counterpart int, withStrand bool) {
	strand := s.seq.sentinel
	if withStrand {
		strand = s.seq.base(counterpart)
	}
	s.t.Cross[pos-1] = CrossFeatures{
		Plus1:  s.seq.base(counterpart + 1),
		Minus1: s.seq.base(counterpart - 1),
		Plus2:  s.seq.base(counterpart + 2),
		Minus2: s.seq.base(counterpart - 2),
		Strand: strand,
		Plus3:  s.seq.base(counterpart + 3),
		Minus3: s.seq.base(counterpart - 3),
	}
}

// fill labels a processed position that has no role yet.
func (s *sweeper) fill(pos int, role Role) {
	if s.t.Roles[pos-1] == Unresolved {
		s.t.Roles[pos-1] = role
	}
}

// relabel marks a new cursor position. StemPair labels are kept.
func (s *sweeper) relabel(pos int, role Role) {
	if !s.seq.inRange(pos) || s.t.Roles[pos-1] == StemPair {
		return
	}
	s.t.Roles[pos-1] = role
}

func (s sequence) blankCross() CrossFeatures {
	n := s.sentinel
	return CrossFeatures{Plus1: n, Minus1: n, Plus2: n, Minus2: n, Strand: n, Plus3: n, Minus3: n}
}
