package smod

import (
	"strings"
	"testing"
)

func Test_editDistance(t *testing.T) {
	type args struct {
		a string
		b string
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{"identical", args{"ACGT", "ACGT"}, 0},
		{"single substitution", args{"ACGT", "ACGA"}, 1},
		{"insertion", args{"ACGT", "ACGGT"}, 1},
		{"empty versus full", args{"", "ACGT"}, 4},
		{"disjoint", args{"AAAA", "TTTT"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := editDistance(tt.args.a, tt.args.b); got != tt.want {
				t.Errorf("editDistance() = %d, want %d", got, tt.want)
			}
			if got := editDistance(tt.args.b, tt.args.a); got != tt.want {
				t.Errorf("editDistance() is asymmetric: %d, want %d", got, tt.want)
			}
		})
	}
}

func Test_relEditDistance(t *testing.T) {
	if got := relEditDistance("ACGT", "ACGA"); got != 0.25 {
		t.Errorf("relEditDistance() = %f, want 0.25", got)
	}
	if got := relEditDistance("", ""); got != 0 {
		t.Errorf("relEditDistance() on empty strings = %f, want 0", got)
	}
}

func Test_nwAlign(t *testing.T) {
	sc := newScorer("ACGT")

	tests := []struct {
		name string
		a, b string
	}{
		{"identical", "ACGT", "ACGT"},
		{"substitution", "ACGT", "ACGA"},
		{"deletion", "ACGTT", "ACGT"},
		{"unequal lengths", "ACGTACGT", "CGTA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ra, rb := nwAlign(tt.a, tt.b, sc)
			if len(ra) != len(rb) {
				t.Fatalf("nwAlign() rows differ in length: %q vs %q", ra, rb)
			}
			if strings.ReplaceAll(ra, "-", "") != tt.a {
				t.Errorf("nwAlign() first row %q does not restore %q", ra, tt.a)
			}
			if strings.ReplaceAll(rb, "-", "") != tt.b {
				t.Errorf("nwAlign() second row %q does not restore %q", rb, tt.b)
			}
		})
	}
}

func Test_starAlign(t *testing.T) {
	sc := newScorer("ACGT")
	members := []string{"ACGTA", "ACGA", "ACGTT", "CGTA"}

	rows := starAlign(members, sc)
	if len(rows) != len(members) {
		t.Fatalf("starAlign() returned %d rows, want %d", len(rows), len(members))
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			t.Errorf("row %d has width %d, want %d", i, len(row), width)
		}
		if strings.ReplaceAll(row, "-", "") != members[i] {
			t.Errorf("row %d %q does not restore member %q", i, row, members[i])
		}
	}
}

func Test_starAlign_single(t *testing.T) {
	rows := starAlign([]string{"ACGT"}, newScorer("ACGT"))
	if len(rows) != 1 || rows[0] != "ACGT" {
		t.Errorf("starAlign() on one member = %v, want the member itself", rows)
	}
}
