package smod

import (
	"math/rand"
	"testing"
)

// clusterOf fabricates a cluster whose windows all hold the same residues,
// one per distinct parent.
func clusterOf(id int, residues string, members int) *Cluster {
	c := &Cluster{ID: id}
	for i := 0; i < members; i++ {
		c.Windows = append(c.Windows, Window{
			Parent:   residues + "_parent_" + string(rune('a'+i)),
			Begin:    0,
			End:      len(residues),
			Residues: residues,
		})
	}
	return c
}

func testMergeParams() MergeParams {
	return MergeParams{
		SimilarityTh:   0.5,
		MinScore:       4,
		MinFreq:        0.5,
		MinClusterSize: 2,
		RegexTh:        0.3,
		SampleSize:     50,
	}
}

func Test_Merge_similarity(t *testing.T) {
	tests := []struct {
		name         string
		similarityTh float64
		wantMotives  int
	}{
		// consensus ACGT vs ACGA: relative edit distance 0.25
		{"merge at threshold 0.75", 0.75, 1},
		{"merge at threshold 0.5", 0.5, 1},
		{"separate above threshold 0.75", 0.8, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clusters := map[int]*Cluster{
				1: clusterOf(1, "ACGT", 5),
				2: clusterOf(2, "ACGA", 5),
			}
			mp := testMergeParams()
			mp.SimilarityTh = tt.similarityTh

			motives := Merge(clusters, "ACGT", mp, rand.New(rand.NewSource(1)))
			if len(motives) != tt.wantMotives {
				t.Fatalf("Merge() produced %d motives, want %d", len(motives), tt.wantMotives)
			}
			if tt.wantMotives == 1 && motives[0].ClusterID != 1 {
				t.Errorf("merged motif id = %d, want the lower id 1", motives[0].ClusterID)
			}
		})
	}
}

func Test_Merge_minClusterSize(t *testing.T) {
	clusters := map[int]*Cluster{
		1: clusterOf(1, "ACGT", 1),
		7: clusterOf(7, "TTTTT", 5),
	}
	mp := testMergeParams()
	mp.MinClusterSize = 3

	motives := Merge(clusters, "ACGT", mp, rand.New(rand.NewSource(1)))
	if len(motives) != 1 {
		t.Fatalf("Merge() produced %d motives, want 1", len(motives))
	}
	if motives[0].ClusterID != 7 {
		t.Errorf("surviving motif id = %d, want 7", motives[0].ClusterID)
	}
}

func Test_Merge_idempotent(t *testing.T) {
	clusters := map[int]*Cluster{
		1: clusterOf(1, "ACGT", 5),
		2: clusterOf(2, "ACGA", 5),
		9: clusterOf(9, "GGGGGG", 5),
	}
	mp := testMergeParams()
	rng := rand.New(rand.NewSource(1))

	first := Merge(clusters, "ACGT", mp, rng)

	// feed the merged groups back in as clusters
	again := make(map[int]*Cluster)
	for _, m := range first {
		c := &Cluster{ID: m.ClusterID}
		for _, s := range m.Seqs {
			c.Windows = append(c.Windows, Window{
				Parent:   s.Header,
				Begin:    0,
				End:      len(s.Residues),
				Residues: s.Residues,
			})
		}
		again[m.ClusterID] = c
	}
	second := Merge(again, "ACGT", mp, rand.New(rand.NewSource(1)))

	if len(second) != len(first) {
		t.Fatalf("re-merging changed the motif count: %d vs %d", len(second), len(first))
	}
	for i := range first {
		if second[i].ClusterID != first[i].ClusterID {
			t.Errorf("re-merging changed motif ids: %d vs %d", second[i].ClusterID, first[i].ClusterID)
		}
		if len(second[i].Seqs) != len(first[i].Seqs) {
			t.Errorf("re-merging changed motif %d membership: %d vs %d",
				first[i].ClusterID, len(second[i].Seqs), len(first[i].Seqs))
		}
	}
}

func Test_Merge_invariants(t *testing.T) {
	clusters := map[int]*Cluster{
		1: clusterOf(1, "ACGT", 4),
		2: clusterOf(2, "ACGA", 4),
	}
	motives := Merge(clusters, "ACGT", testMergeParams(), rand.New(rand.NewSource(1)))
	if len(motives) != 1 {
		t.Fatalf("Merge() produced %d motives, want 1", len(motives))
	}

	m := motives[0]
	for i := range m.TrimmedAlignSeqs {
		if len(m.TrimmedAlignSeqs[i]) > len(m.AlignSeqs[i]) {
			t.Errorf("trimmed row %d longer than its aligned row", i)
		}
	}
	if len(m.SampleSeqs) > testMergeParams().SampleSize {
		t.Errorf("sample of %d exceeds the cap", len(m.SampleSeqs))
	}
	// ACG is unanimous, the last column splits A/T evenly
	if m.Regex != "ACG[AT]" {
		t.Errorf("Regex = %q, want ACG[AT]", m.Regex)
	}
}

func Test_consensusRegex(t *testing.T) {
	// column 2 frequencies: A 0.5, C 0.3, G 0.2; every other column unanimous
	trimmed := []string{
		"AAAAAA", "AAAAAA", "AAAAAA", "AAAAAA", "AAAAAA",
		"AACAAA", "AACAAA", "AACAAA",
		"AAGAAA", "AAGAAA",
	}

	got := consensusRegex(trimmed, 0.3)
	if got != "AA[AC]AAA" {
		t.Errorf("consensusRegex() = %q, want AA[AC]AAA", got)
	}
}

func Test_consensusRegex_wildcard(t *testing.T) {
	// every residue below threshold degrades to a wildcard
	trimmed := []string{"AAAA", "CAAA", "GAAA", "TAAA"}
	got := consensusRegex(trimmed, 0.5)
	if got != ".AAA" {
		t.Errorf("consensusRegex() = %q, want .AAA", got)
	}
}

func Test_trimRange(t *testing.T) {
	type args struct {
		aligned []string
		minFreq float64
	}
	tests := []struct {
		name      string
		args      args
		wantBegin int
		wantEnd   int
	}{
		{
			"fully confident alignment",
			args{[]string{"ACGT", "ACGT"}, 0.5},
			0, 4,
		},
		{
			"gappy flanks trim away",
			args{[]string{"-ACGT-", "AACGTC", "CACGTG"}, 0.9},
			1, 5,
		},
		{
			"nothing confident",
			args{[]string{"ACGT", "CATG", "GTCA", "TGAC"}, 0.9},
			0, 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			begin, end := trimRange(tt.args.aligned, tt.args.minFreq)
			if begin != tt.wantBegin || end != tt.wantEnd {
				t.Errorf("trimRange() = [%d, %d), want [%d, %d)", begin, end, tt.wantBegin, tt.wantEnd)
			}
		})
	}
}
