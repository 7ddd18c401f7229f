package textutil

import "testing"

func TestSanitizeToken(t *testing.T) {
	cases := map[string]string{
		"HIV TAR":       "hiv_tar",
		"  seq-1  ":     "seq-1",
		"tRNA/Phe:chr1": "trna_phe_chr1",
		"..hidden":      "hidden",
		"":              "unknown",
		"***":           "unknown",
		"mir-21.5p":     "mir-21.5p",
		"Ωmega":         "mega",
	}
	for in, want := range cases {
		if got := SanitizeToken(in); got != want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSequenceName(t *testing.T) {
	cases := map[string]string{
		"/data/seq1.ct":  "seq1",
		"hairpin.v2.dot": "hairpin.v2",
		"noext":          "noext",
	}
	for in, want := range cases {
		if got := SequenceName(in); got != want {
			t.Errorf("SequenceName(%q) = %q, want %q", in, got, want)
		}
	}
}
