package smod

import (
	"math"
	"math/rand"
	"sort"
)

// Hit is one scored, localized motif occurrence within a sequence.
type Hit struct {
	Header      string
	Begin       int
	End         int
	PValue      float64
	Subsequence string
	MotifID     int
}

// Decompose lazily scans sequences against the model's motif set and emits
// every occurrence whose p-value is at or below pValue. Hits stream out in
// sequence order, then by start position, then by motif id, so downstream
// writers are deterministic. The stream is finite and restartable only by
// calling Decompose again.
func (m *Model) Decompose(seqs []Sequence, pValue float64) <-chan Hit {
	hits := make(chan Hit, 64)
	go func() {
		defer close(hits)
		for _, s := range seqs {
			var found []Hit
			for _, motif := range m.Motives {
				pattern, err := motif.Pattern()
				if err != nil {
					continue
				}
				q := matchProb(motif.Regex, m.BgFreqs)
				for _, loc := range pattern.FindAllStringIndex(s.Residues, -1) {
					p := occurrencePValue(q, len(s.Residues), loc[1]-loc[0])
					if p <= pValue {
						found = append(found, Hit{
							Header:      s.Header,
							Begin:       loc[0],
							End:         loc[1],
							PValue:      p,
							Subsequence: s.Residues[loc[0]:loc[1]],
							MotifID:     motif.ClusterID,
						})
					}
				}
			}
			sort.Slice(found, func(i, j int) bool {
				if found[i].Begin != found[j].Begin {
					return found[i].Begin < found[j].Begin
				}
				return found[i].MotifID < found[j].MotifID
			})
			for _, h := range found {
				hits <- h
			}
		}
	}()
	return hits
}

// SelectMotives is the single-call path from a fitted model to a final
// motif set: predict the sequences' windows into the learned partition,
// merge and trim the clusters, then quality-filter. The result is stored on
// the model so it persists with it.
func (m *Model) SelectMotives(seqs []Sequence, mp MergeParams, freqTh, stdTh *float64, rng *rand.Rand) (MotifSet, error) {
	clusters := m.Predict(seqs)
	if len(clusters) == 0 {
		return nil, &InsufficientDataError{Stage: "select_motives", Reason: "no windows assigned to any cluster"}
	}

	motives := Merge(clusters, m.Alphabet, mp, rng)
	if len(motives) == 0 {
		return nil, &InsufficientDataError{Stage: "select_motives", Reason: "no motives survived merging"}
	}

	motives, err := QualityFilter(seqs, motives, freqTh, stdTh)
	if err != nil {
		return nil, err
	}
	if len(motives) == 0 {
		return nil, &InsufficientDataError{Stage: "select_motives", Reason: "no motives survived quality filtering"}
	}

	m.Motives = motives
	return motives, nil
}

// matchProb is the per-position probability that the pattern matches under
// the background residue composition: the product over columns of the
// background mass of each column's residue class.
func matchProb(regex string, bg map[byte]float64) float64 {
	q := 1.0
	for i := 0; i < len(regex); i++ {
		switch regex[i] {
		case '.':
			// wildcard matches anything
		case '[':
			var mass float64
			for i++; i < len(regex) && regex[i] != ']'; i++ {
				mass += residueFreq(bg, regex[i])
			}
			q *= mass
		default:
			q *= residueFreq(bg, regex[i])
		}
	}
	return q
}

func residueFreq(bg map[byte]float64, r byte) float64 {
	if f, ok := bg[r]; ok {
		return f
	}
	return 1e-4 // unseen residue
}

// occurrencePValue is the Poisson tail on the expected occurrence count of
// a width-w pattern in a length-n sequence.
func occurrencePValue(q float64, n, w int) float64 {
	positions := n - w + 1
	if positions < 1 {
		positions = 1
	}
	p := 1 - math.Exp(-q*float64(positions))
	if p <= 0 {
		p = math.SmallestNonzeroFloat64
	}
	if p > 1 {
		p = 1
	}
	return p
}
