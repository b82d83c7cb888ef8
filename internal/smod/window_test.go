package smod

import "testing"

func Test_windows(t *testing.T) {
	type args struct {
		residues string
		minSize  int
		maxSize  int
	}
	tests := []struct {
		name  string
		args  args
		count int
	}{
		{
			"all windows of a short sequence",
			args{"ACGTAC", 4, 6},
			// 3 of size 4, 2 of size 5, 1 of size 6
			6,
		},
		{
			"sequence shorter than the minimum",
			args{"ACG", 4, 10},
			0,
		},
		{
			"single size",
			args{"ACGTACGT", 8, 8},
			1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := windows(Sequence{Header: "s", Residues: tt.args.residues}, tt.args.minSize, tt.args.maxSize)
			if len(ws) != tt.count {
				t.Fatalf("windows() returned %d windows, want %d", len(ws), tt.count)
			}
			for _, w := range ws {
				if w.Len() < tt.args.minSize || w.Len() > tt.args.maxSize {
					t.Errorf("window %v violates size bounds [%d, %d]", w, tt.args.minSize, tt.args.maxSize)
				}
				if w.Residues != tt.args.residues[w.Begin:w.End] {
					t.Errorf("window residues %q do not match range [%d, %d)", w.Residues, w.Begin, w.End)
				}
			}
		})
	}
}
