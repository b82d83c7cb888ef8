package smod

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func testParams() Params {
	return Params{
		MinSubarraySize: 4,
		MaxSubarraySize: 6,
		Complexity:      3,
		NClusters:       4,
		Workers:         2,
	}
}

// motifSeqs plants ACGTACGT into every sequence at varying offsets.
func motifSeqs() SequenceSet {
	flanks := []string{
		"TTGGAA", "GGTTCC", "CCAATT", "AATTGG",
		"TGTGTG", "CACACA", "GTGTCA", "TCTCTC",
		"AGAGAG", "CTCTAG", "GAGATC", "TATATA",
	}
	set := SequenceSet{Role: Positive}
	for i, f := range flanks {
		set.Seqs = append(set.Seqs, Sequence{
			Header:   "pos" + string(rune('a'+i)),
			Residues: f[:3] + "ACGTACGT" + f[3:],
		})
	}
	return set
}

func Test_Fit_invalidParams(t *testing.T) {
	pos := motifSeqs()
	rng := rand.New(rand.NewSource(1))
	neg, err := MakeBackground(pos, 1, rng)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"min above max", func(p *Params) { p.MinSubarraySize = 8; p.MaxSubarraySize = 6 }},
		{"complexity below one", func(p *Params) { p.Complexity = 0 }},
		{"no clusters", func(p *Params) { p.NClusters = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.mutate(&p)
			_, err := Fit(pos, neg, p)
			var perr *InvalidParameterError
			if !errors.As(err, &perr) {
				t.Errorf("Fit() error = %v, want InvalidParameterError", err)
			}
		})
	}
}

func Test_Fit_insufficientData(t *testing.T) {
	pos := motifSeqs()
	rng := rand.New(rand.NewSource(1))
	neg, _ := MakeBackground(pos, 1, rng)

	tests := []struct {
		name string
		pos  SequenceSet
		neg  SequenceSet
	}{
		{"empty positive population", SequenceSet{}, neg},
		{"empty background population", pos, SequenceSet{}},
		{
			"positives shorter than the minimum window",
			SequenceSet{Seqs: []Sequence{{Header: "tiny", Residues: "ACG"}}},
			neg,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(tt.pos, tt.neg, testParams())
			var derr *InsufficientDataError
			if !errors.As(err, &derr) {
				t.Errorf("Fit() error = %v, want InsufficientDataError", err)
			}
		})
	}
}

func Test_Fit_predict(t *testing.T) {
	pos := motifSeqs()
	rng := rand.New(rand.NewSource(1))
	neg, err := MakeBackground(pos, 2, rng)
	if err != nil {
		t.Fatal(err)
	}

	p := testParams()
	model, err := Fit(pos, neg, p)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if len(model.Centroids) == 0 || len(model.Centroids) > p.NClusters {
		t.Fatalf("Fit() learned %d centroids, want 1..%d", len(model.Centroids), p.NClusters)
	}

	clusters := model.Predict(pos.Seqs)
	if len(clusters) == 0 {
		t.Fatal("Predict() assigned no windows")
	}
	for id, c := range clusters {
		if id != c.ID {
			t.Errorf("cluster id mismatch: key %d vs %d", id, c.ID)
		}
		if id < 0 || id >= len(model.Centroids) {
			t.Errorf("cluster id %d out of range", id)
		}
		for _, w := range c.Windows {
			if w.Len() < p.MinSubarraySize || w.Len() > p.MaxSubarraySize {
				t.Errorf("window %v violates size bounds", w)
			}
			if !strings.Contains(pos.headerSet()[w.Parent], w.Residues) {
				t.Errorf("window %q not found in parent %s", w.Residues, w.Parent)
			}
		}
	}

	// a second predict over the same state must agree exactly
	again := model.Predict(pos.Seqs)
	if !reflect.DeepEqual(clusters, again) {
		t.Error("Predict() is not deterministic for a fixed model")
	}
}

func Test_populationCounts_blockSize(t *testing.T) {
	set := motifSeqs()
	p := testParams()

	a, an := populationCounts(set, p, 1)
	b, bn := populationCounts(set, p, 64)
	if an != bn {
		t.Fatalf("window counts differ across block sizes: %d vs %d", an, bn)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("k-mer statistics differ across block sizes")
	}
}

// headerSet maps headers to residues for lookups in tests.
func (set SequenceSet) headerSet() map[string]string {
	m := make(map[string]string, len(set.Seqs))
	for _, s := range set.Seqs {
		m[s.Header] = s.Residues
	}
	return m
}
