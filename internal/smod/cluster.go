package smod

import (
	"math"
)

// Params are the settings a fit is performed under. They ride along in the
// model so predict and decompose see the same windows the fit saw.
type Params struct {
	MinSubarraySize int
	MaxSubarraySize int
	Complexity      int
	NClusters       int
	PosBlockSize    int
	NegBlockSize    int
	Workers         int
}

func (p Params) validate() error {
	if p.MinSubarraySize < 4 {
		return &InvalidParameterError{Param: "min_subarray_size", Reason: "must be >= 4"}
	}
	if p.MinSubarraySize > p.MaxSubarraySize {
		return &InvalidParameterError{Param: "min_subarray_size", Reason: "greater than max_subarray_size"}
	}
	if p.Complexity < 1 {
		return &InvalidParameterError{Param: "complexity", Reason: "must be >= 1"}
	}
	if p.NClusters < 1 {
		return &InvalidParameterError{Param: "n_clusters", Reason: "must be >= 1"}
	}
	return nil
}

// Fit learns a discriminative partition of positive-derived windows against
// the background. Both populations are scanned block-by-block on a worker
// pool; the merged k-mer statistics drive an enrichment screen, and the
// enriched windows are partitioned into NClusters groups.
func Fit(pos, neg SequenceSet, p Params) (*Model, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := checkPopulation(pos, "positive", p.MinSubarraySize); err != nil {
		return nil, err
	}
	if err := checkPopulation(neg, "background", p.MinSubarraySize); err != nil {
		return nil, err
	}

	posCounts, posWindows := populationCounts(pos, p, p.PosBlockSize)
	negCounts, negWindows := populationCounts(neg, p, p.NegBlockSize)
	if posWindows == 0 || negWindows == 0 {
		return nil, &InsufficientDataError{Stage: "fit", Reason: "no windows extracted"}
	}

	m := &Model{
		Params:   p,
		Alphabet: pos.Alphabet(),
		PosKmers: posCounts,
		NegKmers: negCounts,
		PosTotal: sum(posCounts),
		NegTotal: sum(negCounts),
		BgFreqs:  neg.ResidueFreqs(),
		NumPos:   len(pos.Seqs),
	}

	d := m.discriminator()
	var vecs []FeatureVector
	for _, s := range pos.Seqs {
		for _, w := range windows(s, p.MinSubarraySize, p.MaxSubarraySize) {
			v := d.Features(w.Residues)
			if m.enrichment(v) > 0 {
				vecs = append(vecs, v)
			}
		}
	}
	if len(vecs) == 0 {
		return nil, &InsufficientDataError{Stage: "fit", Reason: "no windows enriched against the background"}
	}

	m.Centroids = d.Partition(vecs, p.NClusters)
	return m, nil
}

// Predict assigns the windows of held-out sequences to the nearest learned
// cluster. No statistics are updated. Windows failing the enrichment screen
// are ignored, exactly as during the fit.
func (m *Model) Predict(seqs []Sequence) map[int]*Cluster {
	d := m.discriminator()
	clusters := make(map[int]*Cluster)
	for _, s := range seqs {
		for _, w := range windows(s, m.Params.MinSubarraySize, m.Params.MaxSubarraySize) {
			v := d.Features(w.Residues)
			if m.enrichment(v) <= 0 {
				continue
			}
			id := d.Assign(v, m.Centroids)
			c, ok := clusters[id]
			if !ok {
				c = &Cluster{ID: id}
				clusters[id] = c
			}
			c.Windows = append(c.Windows, w)
		}
	}
	return clusters
}

// enrichment scores a window's features against the positive vs background
// k-mer distributions. Positive means enriched in the foreground.
func (m *Model) enrichment(v FeatureVector) float64 {
	var score, total float64
	for kmer, count := range v {
		lo := math.Log((m.PosKmers[kmer]+1)/(m.PosTotal+1)) -
			math.Log((m.NegKmers[kmer]+1)/(m.NegTotal+1))
		score += count * lo
		total += count
	}
	if total == 0 {
		return 0
	}
	return score / total
}

func (m *Model) discriminator() Discriminator {
	return kmerDiscriminator{complexity: m.Params.Complexity}
}

func checkPopulation(set SequenceSet, name string, minSize int) error {
	if len(set.Seqs) == 0 {
		return &InsufficientDataError{Stage: "fit", Reason: "empty " + name + " population"}
	}
	for _, s := range set.Seqs {
		if len(s.Residues) >= minSize {
			return nil
		}
	}
	return &InsufficientDataError{Stage: "fit", Reason: name + " sequences shorter than the minimum window"}
}

func sum(v FeatureVector) float64 {
	var t float64
	for _, x := range v {
		t += x
	}
	return t
}
