package smod

import (
	"fmt"
	"math/rand"
	"sort"
)

// MakeBackground synthesizes the negative population from the positive one.
// For each positive sequence it emits `times` variants shuffled to preserve
// first-order residue frequency, then `times` more shuffled to preserve
// doublet (second-order) frequency. The result has the same local statistics
// as the foreground but no higher-order motif structure. The positive set is
// not touched.
func MakeBackground(pos SequenceSet, times int, rng *rand.Rand) (SequenceSet, error) {
	if times < 1 {
		return SequenceSet{}, &InvalidParameterError{Param: "times", Reason: "must be >= 1"}
	}
	if len(pos.Seqs) == 0 {
		return SequenceSet{}, &InsufficientDataError{Stage: "background", Reason: "empty positive set"}
	}

	neg := SequenceSet{Role: Background}
	for t := 0; t < times; t++ {
		for _, s := range pos.Seqs {
			neg.Seqs = append(neg.Seqs, Sequence{
				Header:   fmt.Sprintf("%s_shuffle_o1_%d", s.Header, t),
				Residues: shuffleOrder1(s.Residues, rng),
			})
		}
	}
	for t := 0; t < times; t++ {
		for _, s := range pos.Seqs {
			neg.Seqs = append(neg.Seqs, Sequence{
				Header:   fmt.Sprintf("%s_shuffle_o2_%d", s.Header, t),
				Residues: shuffleOrder2(s.Residues, rng),
			})
		}
	}
	return neg, nil
}

// shuffleOrder1 returns a uniform permutation of the residues.
func shuffleOrder1(s string, rng *rand.Rand) string {
	b := []byte(s)
	rng.Shuffle(len(b), func(i, j int) {
		b[i], b[j] = b[j], b[i]
	})
	return string(b)
}

// shuffleOrder2 returns a permutation preserving the exact doublet counts,
// via the Altschul-Erickson method: pick a random last out-edge per residue
// so the last edges form a tree into the terminal residue, shuffle the
// remaining out-edges, then take an Eulerian walk through the doublet graph.
func shuffleOrder2(s string, rng *rand.Rand) string {
	if len(s) <= 2 {
		return s
	}

	edges := make(map[byte][]byte)
	for i := 0; i+1 < len(s); i++ {
		edges[s[i]] = append(edges[s[i]], s[i+1])
	}
	first, last := s[0], s[len(s)-1]

	verts := make([]byte, 0, len(edges))
	for v := range edges {
		verts = append(verts, v)
	}
	sort.Slice(verts, func(i, j int) bool { return verts[i] < verts[j] })

	// sample last edges until every residue's chain of last edges
	// reaches the terminal residue
	lastEdge := make(map[byte]byte)
	for {
		for k := range lastEdge {
			delete(lastEdge, k)
		}
		for _, v := range verts {
			if v == last {
				continue
			}
			out := edges[v]
			lastEdge[v] = out[rng.Intn(len(out))]
		}
		connected := true
		for _, v := range verts {
			if v == last {
				continue
			}
			u := v
			for steps := 0; u != last && steps <= len(verts); steps++ {
				u = lastEdge[u]
			}
			if u != last {
				connected = false
				break
			}
		}
		if connected {
			break
		}
	}

	// shuffle the non-last out-edges, keeping each vertex's last edge last
	walk := make(map[byte][]byte, len(edges))
	for _, v := range verts {
		out := append([]byte(nil), edges[v]...)
		if le, ok := lastEdge[v]; ok {
			for i, u := range out {
				if u == le {
					out[i], out[len(out)-1] = out[len(out)-1], out[i]
					break
				}
			}
			head := out[:len(out)-1]
			rng.Shuffle(len(head), func(i, j int) {
				head[i], head[j] = head[j], head[i]
			})
		} else {
			rng.Shuffle(len(out), func(i, j int) {
				out[i], out[j] = out[j], out[i]
			})
		}
		walk[v] = out
	}

	out := make([]byte, 0, len(s))
	out = append(out, first)
	cur := first
	for len(walk[cur]) > 0 {
		next := walk[cur][0]
		walk[cur] = walk[cur][1:]
		out = append(out, next)
		cur = next
	}
	return string(out)
}
