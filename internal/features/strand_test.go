package features

import "testing"

func TestStrandNeighbors(t *testing.T) {
	got := StrandNeighbors([]string{"G", "G", "A", "A", "C", "C"}, "")
	if len(got) != 6 {
		t.Fatalf("expected 6 bundles, got %d", len(got))
	}
	first := StrandFeatures{Plus1: "G", Minus1: "N", Plus2: "A", Minus2: "N", Plus3: "A", Minus3: "N"}
	if got[0] != first {
		t.Fatalf("position 1: got %+v want %+v", got[0], first)
	}
	middle := StrandFeatures{Plus1: "C", Minus1: "A", Plus2: "C", Minus2: "G", Plus3: "N", Minus3: "G"}
	if got[3] != middle {
		t.Fatalf("position 4: got %+v want %+v", got[3], middle)
	}
	last := StrandFeatures{Plus1: "N", Minus1: "C", Plus2: "N", Minus2: "A", Plus3: "N", Minus3: "A"}
	if got[5] != last {
		t.Fatalf("position 6: got %+v want %+v", got[5], last)
	}
}

func TestStrandNeighborsCustomSentinel(t *testing.T) {
	got := StrandNeighbors([]string{"A", "C", "G"}, "X")
	want := StrandFeatures{Plus1: "C", Minus1: "X", Plus2: "G", Minus2: "X", Plus3: "X", Minus3: "X"}
	if got[0] != want {
		t.Fatalf("got %+v want %+v", got[0], want)
	}
}

func TestStrandNeighborsEmpty(t *testing.T) {
	if got := StrandNeighbors(nil, ""); len(got) != 0 {
		t.Fatalf("expected no bundles, got %d", len(got))
	}
}

func TestRoleCodes(t *testing.T) {
	cases := map[Role]string{
		Unresolved:        "",
		StemPair:          "M",
		BulgeContinuation: "A",
		HairpinLoop:       "L",
		SingleStrand:      "S",
	}
	for role, code := range cases {
		if got := role.Code(); got != code {
			t.Errorf("%s.Code() = %q, want %q", role, got, code)
		}
	}
}
