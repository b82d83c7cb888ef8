package smod

import (
	"github.com/BurntSushi/cablastp/blosum"
)

const gapChar = '-'

// scorer scores residue pairs during alignment. Protein alphabets score
// with BLOSUM62; nucleotide alphabets use flat match/mismatch scores.
type scorer struct {
	lookup map[byte]int // BLOSUM62 residue index, nil for nucleotides
}

func newScorer(alphabet string) scorer {
	if len(alphabet) <= 6 {
		return scorer{}
	}
	lookup := make(map[byte]int, len(blosum.Alphabet62))
	for i, r := range blosum.Alphabet62 {
		lookup[byte(r)] = i
	}
	return scorer{lookup: lookup}
}

func (sc scorer) score(a, b byte) int {
	if sc.lookup == nil {
		if a == b {
			return 2
		}
		return -1
	}
	i, iok := sc.lookup[a]
	j, jok := sc.lookup[b]
	if !iok || !jok {
		return -1
	}
	return blosum.Matrix62[i][j]
}

func (sc scorer) gap() int {
	if sc.lookup == nil {
		return -2
	}
	return -4
}

// nwAlign globally aligns two sequences and returns both with gap
// characters inserted. Plain Needleman-Wunsch, small inputs only.
func nwAlign(a, b string, sc scorer) (string, string) {
	r, c := len(a)+1, len(b)+1
	table := make([]int, r*c)
	gap := sc.gap()
	for i := 1; i < r; i++ {
		table[i*c] = table[(i-1)*c] + gap
	}
	for j := 1; j < c; j++ {
		table[j] = table[j-1] + gap
	}
	for i := 1; i < r; i++ {
		for j := 1; j < c; j++ {
			diag := table[(i-1)*c+j-1] + sc.score(a[i-1], b[j-1])
			up := table[(i-1)*c+j] + gap
			left := table[i*c+j-1] + gap
			best := diag
			if up > best {
				best = up
			}
			if left > best {
				best = left
			}
			table[i*c+j] = best
		}
	}

	var ra, rb []byte
	i, j := len(a), len(b)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && table[i*c+j] == table[(i-1)*c+j-1]+sc.score(a[i-1], b[j-1]):
			ra = append(ra, a[i-1])
			rb = append(rb, b[j-1])
			i--
			j--
		case i > 0 && table[i*c+j] == table[(i-1)*c+j]+gap:
			ra = append(ra, a[i-1])
			rb = append(rb, gapChar)
			i--
		default:
			ra = append(ra, gapChar)
			rb = append(rb, b[j-1])
			j--
		}
	}
	reverse(ra)
	reverse(rb)
	return string(ra), string(rb)
}

// starAlign computes a multiple alignment by aligning every member against
// the center (the member with the smallest total edit distance to the rest)
// and merging the pairwise gap patterns, gaps accumulating monotonically.
// Row order matches member order.
func starAlign(members []string, sc scorer) []string {
	if len(members) <= 1 {
		return append([]string(nil), members...)
	}

	ci := 0
	best := -1
	for i, a := range members {
		total := 0
		for j, b := range members {
			if i != j {
				total += editDistance(a, b)
			}
		}
		if best < 0 || total < best {
			ci, best = i, total
		}
	}
	center := members[ci]

	rows := make([]string, len(members))
	rows[ci] = center
	master := center
	for i, m := range members {
		if i == ci {
			continue
		}
		ca, ma := nwAlign(center, m, sc)
		master, rows = mergeIntoMaster(master, rows, ca, ma, i)
	}
	return rows
}

// mergeIntoMaster threads a new pairwise alignment (ca, ma) of the center
// into the running master alignment, padding existing rows and the new row
// wherever the two center images disagree on gap placement.
func mergeIntoMaster(master string, rows []string, ca, ma string, idx int) (string, []string) {
	var padOld, padNew []bool
	var merged []byte
	i, j := 0, 0
	for i < len(master) || j < len(ca) {
		switch {
		case i < len(master) && j < len(ca) && master[i] == ca[j]:
			merged = append(merged, master[i])
			padOld = append(padOld, false)
			padNew = append(padNew, false)
			i++
			j++
		case i < len(master) && master[i] == gapChar:
			merged = append(merged, gapChar)
			padOld = append(padOld, false)
			padNew = append(padNew, true)
			i++
		default:
			merged = append(merged, gapChar)
			padOld = append(padOld, true)
			padNew = append(padNew, false)
			j++
		}
	}

	pad := func(row string, mask []bool) string {
		var out []byte
		p := 0
		for k := range mask {
			if mask[k] {
				out = append(out, gapChar)
			} else {
				out = append(out, row[p])
				p++
			}
		}
		return string(out)
	}

	for r, row := range rows {
		if row != "" {
			rows[r] = pad(row, padOld)
		}
	}
	rows[idx] = pad(ma, padNew)
	return string(merged), rows
}

// editDistance is the Levenshtein distance between two sequences.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// relEditDistance normalizes edit distance by the longer sequence.
func relEditDistance(a, b string) float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	return float64(editDistance(a, b)) / float64(n)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
