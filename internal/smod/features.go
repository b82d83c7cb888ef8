package smod

import (
	"math"
	"runtime"
	"sync"
)

// FeatureVector is a sparse k-mer count vector.
type FeatureVector map[string]float64

// Discriminator is the capability interface the pipeline needs from the
// concrete feature/partition technique: turn a subsequence into features,
// partition a set of feature vectors, and assign new vectors to the learned
// partition. The k-mer discriminator below is the default; the pipeline's
// control flow never looks inside it.
type Discriminator interface {
	Features(residues string) FeatureVector
	Partition(vecs []FeatureVector, n int) []FeatureVector
	Assign(v FeatureVector, centroids []FeatureVector) int
}

// kmerDiscriminator featurizes windows with k-mer counts for k up to
// `complexity` and partitions them with Lloyd iterations over cosine
// distance. Higher complexity captures more local detail at more cost.
type kmerDiscriminator struct {
	complexity int
}

func (d kmerDiscriminator) Features(residues string) FeatureVector {
	v := make(FeatureVector)
	for k := 1; k <= d.complexity && k <= len(residues); k++ {
		for i := 0; i+k <= len(residues); i++ {
			v[residues[i:i+k]]++
		}
	}
	return v
}

// Partition runs a fixed number of Lloyd iterations. Seeding is
// deterministic (evenly spaced vectors) so a fit is reproducible.
func (d kmerDiscriminator) Partition(vecs []FeatureVector, n int) []FeatureVector {
	if len(vecs) < n {
		n = len(vecs)
	}
	centroids := make([]FeatureVector, n)
	for i := 0; i < n; i++ {
		centroids[i] = vecs[i*len(vecs)/n].clone()
	}

	const rounds = 12
	assign := make([]int, len(vecs))
	for r := 0; r < rounds; r++ {
		changed := false
		for i, v := range vecs {
			best := d.Assign(v, centroids)
			if best != assign[i] {
				assign[i] = best
				changed = true
			}
		}
		if r > 0 && !changed {
			break
		}
		sums := make([]FeatureVector, n)
		counts := make([]int, n)
		for i := range sums {
			sums[i] = make(FeatureVector)
		}
		for i, v := range vecs {
			sums[assign[i]].add(v)
			counts[assign[i]]++
		}
		for i := range sums {
			if counts[i] == 0 {
				continue // keep the stale centroid rather than divide by zero
			}
			sums[i].scale(1 / float64(counts[i]))
			centroids[i] = sums[i]
		}
	}
	return centroids
}

func (d kmerDiscriminator) Assign(v FeatureVector, centroids []FeatureVector) int {
	best, bestDist := 0, math.Inf(1)
	for i, c := range centroids {
		if dist := cosineDist(v, c); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func (v FeatureVector) clone() FeatureVector {
	c := make(FeatureVector, len(v))
	for k, x := range v {
		c[k] = x
	}
	return c
}

func (v FeatureVector) add(o FeatureVector) {
	for k, x := range o {
		v[k] += x
	}
}

func (v FeatureVector) scale(f float64) {
	for k := range v {
		v[k] *= f
	}
}

func cosineDist(a, b FeatureVector) float64 {
	var dot, na, nb float64
	for k, x := range a {
		na += x * x
		if y, ok := b[k]; ok {
			dot += x * y
		}
	}
	for _, y := range b {
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/math.Sqrt(na*nb)
}

// countChunk is one block's worth of population k-mer statistics.
type countChunk struct {
	counts  FeatureVector
	windows int
}

// populationCounts extracts k-mer counts over every window of every
// sequence in the set, block by block on a worker pool. Chunk merging is a
// commutative map sum, so the block size never changes the result.
func populationCounts(set SequenceSet, p Params, blockSize int) (FeatureVector, int) {
	workers := p.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if blockSize < 1 {
		blockSize = 64
	}
	d := kmerDiscriminator{complexity: p.Complexity}

	jobs := make(chan []Sequence, workers)
	results := make(chan countChunk, workers)
	wg := &sync.WaitGroup{}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for block := range jobs {
				chunk := countChunk{counts: make(FeatureVector)}
				for _, s := range block {
					for _, w := range windows(s, p.MinSubarraySize, p.MaxSubarraySize) {
						chunk.counts.add(d.Features(w.Residues))
						chunk.windows++
					}
				}
				results <- chunk
			}
		}()
	}

	go func() {
		for begin := 0; begin < len(set.Seqs); begin += blockSize {
			end := begin + blockSize
			if end > len(set.Seqs) {
				end = len(set.Seqs)
			}
			jobs <- set.Seqs[begin:end]
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	total := make(FeatureVector)
	n := 0
	for chunk := range results {
		total.add(chunk.counts)
		n += chunk.windows
	}
	return total, n
}
