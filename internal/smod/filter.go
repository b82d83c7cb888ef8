package smod

import (
	"math"
)

// QualityFilter drops motives whose occurrence frequency or positional
// spread fail the thresholds. A nil threshold disables its constraint, so
// free-floating motifs (no position requirement) and strictly positioned
// signals are both expressible. Input sequences are never mutated.
func QualityFilter(seqs []Sequence, motives MotifSet, freqTh, stdTh *float64) (MotifSet, error) {
	if len(seqs) == 0 {
		return nil, &InsufficientDataError{Stage: "quality_filter", Reason: "no sequences to scan"}
	}

	var kept MotifSet
	for _, motif := range motives {
		pattern, err := motif.Pattern()
		if err != nil {
			continue
		}

		var positions []float64
		for _, s := range seqs {
			if loc := pattern.FindStringIndex(s.Residues); loc != nil {
				positions = append(positions, float64(loc[0]))
			}
		}

		motif.Frequency = float64(len(positions)) / float64(len(seqs))
		motif.PositionStd = stddev(positions)

		if freqTh != nil && motif.Frequency < *freqTh {
			continue
		}
		if stdTh != nil && motif.PositionStd > *stdTh {
			continue
		}
		kept = append(kept, motif)
	}
	return kept, nil
}

// stddev is the population standard deviation; zero for fewer than two values.
func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)))
}
