package smod

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
)

// Motif is the terminal unit of value: a merged cluster backed by a sampled
// multiple alignment, its high-confidence core, and a consensus pattern.
type Motif struct {
	ClusterID int

	// Seqs are the member subsequences, tagged with their originating header
	Seqs []Sequence

	// SampleSeqs is the bounded random sample the alignment was built from
	SampleSeqs []string

	// AlignSeqs is the full multiple alignment of the sample
	AlignSeqs []string

	// TrimmedAlignSeqs is the alignment restricted to confident columns
	TrimmedAlignSeqs []string

	// Regex is the consensus pattern; its width equals the trimmed width
	Regex string

	// Frequency is the fraction of scanned sequences with an occurrence
	Frequency float64

	// PositionStd is the spread of first-occurrence start positions
	PositionStd float64

	pattern *regexp.Regexp
}

// Pattern compiles (once) and returns the motif's consensus regex.
func (m *Motif) Pattern() (*regexp.Regexp, error) {
	if m.pattern == nil {
		p, err := regexp.Compile(m.Regex)
		if err != nil {
			return nil, err
		}
		m.pattern = p
	}
	return m.pattern, nil
}

// MotifSet holds motives in discovery order with unique cluster ids.
type MotifSet []*Motif

// Get returns the motif with the given cluster id, or nil.
func (ms MotifSet) Get(id int) *Motif {
	for _, m := range ms {
		if m.ClusterID == id {
			return m
		}
	}
	return nil
}

// MergeParams control cluster merging, alignment trimming, and consensus
// pattern derivation.
type MergeParams struct {
	SimilarityTh   float64
	MinScore       int
	MinFreq        float64
	MinClusterSize int
	RegexTh        float64
	SampleSize     int
}

// mergePair is a candidate cluster pair, ordered by edit distance so that
// conflicting merges resolve deterministically.
type mergePair struct {
	a, b, dist int
}

// Merge folds similar raw clusters into consensus motives. Clusters merge
// when the relative edit distance of their consensus sequences is within
// 1-SimilarityTh; merging is transitive and the lower id wins as the
// canonical id. Merged groups below MinClusterSize originating sequences
// are discarded entirely, as are groups whose trimmed alignment core comes
// up shorter than MinScore columns.
func Merge(clusters map[int]*Cluster, alphabet string, mp MergeParams, rng *rand.Rand) MotifSet {
	ids := make([]int, 0, len(clusters))
	for id := range clusters {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	consensus := make(map[int]string, len(ids))
	for _, id := range ids {
		consensus[id] = consensusOf(clusters[id].Windows)
	}

	var pairs []mergePair
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			if relEditDistance(consensus[a], consensus[b]) <= 1-mp.SimilarityTh {
				pairs = append(pairs, mergePair{a: a, b: b, dist: editDistance(consensus[a], consensus[b])})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].dist != pairs[j].dist {
			return pairs[i].dist < pairs[j].dist
		}
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})

	uf := newUnionFind(ids)
	for _, p := range pairs {
		uf.union(p.a, p.b)
	}

	// gather member windows under each canonical id, deduped
	groups := make(map[int][]Window)
	seen := make(map[int]map[string]bool)
	for _, id := range ids {
		root := uf.find(id)
		if seen[root] == nil {
			seen[root] = make(map[string]bool)
		}
		for _, w := range clusters[id].Windows {
			key := fmt.Sprintf("%s:%d-%d", w.Parent, w.Begin, w.End)
			if !seen[root][key] {
				seen[root][key] = true
				groups[root] = append(groups[root], w)
			}
		}
	}

	roots := make([]int, 0, len(groups))
	for root := range groups {
		roots = append(roots, root)
	}
	sort.Ints(roots)

	sc := newScorer(alphabet)
	var motives MotifSet
	for _, root := range roots {
		group := &Cluster{ID: root, Windows: groups[root]}
		if len(group.parents()) < mp.MinClusterSize {
			continue
		}

		motif := buildMotif(group, mp, sc, rng)
		if motif != nil {
			motives = append(motives, motif)
		}
	}
	return motives
}

// buildMotif samples, aligns, trims, and derives the consensus pattern for
// one merged group. Returns nil when the trimmed core is too short; the
// caller drops the motif silently.
func buildMotif(group *Cluster, mp MergeParams, sc scorer, rng *rand.Rand) *Motif {
	members := make([]Sequence, len(group.Windows))
	for i, w := range group.Windows {
		members[i] = Sequence{
			Header:   fmt.Sprintf("%s:%d-%d", w.Parent, w.Begin, w.End),
			Residues: w.Residues,
		}
	}

	sample := make([]string, len(members))
	for i, m := range members {
		sample[i] = m.Residues
	}
	if len(sample) > mp.SampleSize {
		rng.Shuffle(len(sample), func(i, j int) {
			sample[i], sample[j] = sample[j], sample[i]
		})
		sample = sample[:mp.SampleSize]
	}

	aligned := starAlign(sample, sc)
	begin, end := trimRange(aligned, mp.MinFreq)
	if end-begin < mp.MinScore {
		return nil
	}

	trimmed := make([]string, len(aligned))
	for i, row := range aligned {
		trimmed[i] = row[begin:end]
	}

	return &Motif{
		ClusterID:        group.ID,
		Seqs:             members,
		SampleSeqs:       sample,
		AlignSeqs:        aligned,
		TrimmedAlignSeqs: trimmed,
		Regex:            consensusRegex(trimmed, mp.RegexTh),
	}
}

// consensusOf reduces a cluster's windows to a single consensus string:
// the per-column plurality residue over the median window width.
func consensusOf(ws []Window) string {
	if len(ws) == 0 {
		return ""
	}
	lengths := make([]int, len(ws))
	for i, w := range ws {
		lengths[i] = w.Len()
	}
	sort.Ints(lengths)
	width := lengths[len(lengths)/2]

	var out []byte
	for c := 0; c < width; c++ {
		counts := make(map[byte]int)
		for _, w := range ws {
			if c < len(w.Residues) {
				counts[w.Residues[c]]++
			}
		}
		out = append(out, plurality(counts))
	}
	return string(out)
}

// plurality picks the most frequent residue, lowest byte on ties.
func plurality(counts map[byte]int) byte {
	var best byte
	bestCount := -1
	for r, n := range counts {
		if n > bestCount || (n == bestCount && r < best) {
			best, bestCount = r, n
		}
	}
	return best
}

// trimRange finds the longest contiguous run of confident columns: those
// whose top residue frequency is at least minFreq. Gaps count against a
// column but never for it.
func trimRange(aligned []string, minFreq float64) (int, int) {
	if len(aligned) == 0 {
		return 0, 0
	}
	width := len(aligned[0])
	rows := float64(len(aligned))

	begin, end := 0, 0
	runStart := -1
	for c := 0; c <= width; c++ {
		confident := false
		if c < width {
			counts := make(map[byte]int)
			for _, row := range aligned {
				if row[c] != gapChar {
					counts[row[c]]++
				}
			}
			top := 0
			for _, n := range counts {
				if n > top {
					top = n
				}
			}
			confident = float64(top)/rows >= minFreq
		}
		if confident && runStart < 0 {
			runStart = c
		}
		if !confident && runStart >= 0 {
			if c-runStart > end-begin {
				begin, end = runStart, c
			}
			runStart = -1
		}
	}
	return begin, end
}

// consensusRegex derives the pattern: each trimmed column contributes the
// residues at or above regexTh frequency, by descending frequency; a column
// where nothing qualifies degrades to a wildcard.
func consensusRegex(trimmed []string, regexTh float64) string {
	if len(trimmed) == 0 {
		return ""
	}
	rows := float64(len(trimmed))
	var b strings.Builder
	for c := 0; c < len(trimmed[0]); c++ {
		counts := make(map[byte]int)
		for _, row := range trimmed {
			if row[c] != gapChar {
				counts[row[c]]++
			}
		}
		type rc struct {
			r byte
			n int
		}
		var keep []rc
		for r, n := range counts {
			if float64(n)/rows >= regexTh {
				keep = append(keep, rc{r: r, n: n})
			}
		}
		sort.Slice(keep, func(i, j int) bool {
			if keep[i].n != keep[j].n {
				return keep[i].n > keep[j].n
			}
			return keep[i].r < keep[j].r
		})

		switch len(keep) {
		case 0:
			b.WriteByte('.')
		case 1:
			b.WriteByte(keep[0].r)
		default:
			b.WriteByte('[')
			for _, k := range keep {
				b.WriteByte(k.r)
			}
			b.WriteByte(']')
		}
	}
	return b.String()
}

// unionFind resolves transitive merges; the root is always the lowest id.
type unionFind struct {
	parent map[int]int
}

func newUnionFind(ids []int) *unionFind {
	uf := &unionFind{parent: make(map[int]int, len(ids))}
	for _, id := range ids {
		uf.parent[id] = id
	}
	return uf
}

func (uf *unionFind) find(id int) int {
	for uf.parent[id] != id {
		uf.parent[id] = uf.parent[uf.parent[id]]
		id = uf.parent[id]
	}
	return id
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
}
