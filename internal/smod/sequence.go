// Package smod discovers statistically enriched sequence motifs by
// contrasting a positive sequence population against a shuffled background,
// and decomposes arbitrary sequences into scored motif occurrences.
package smod

import (
	"io"
	"os"
	"strings"

	"github.com/TuftsBCB/io/fasta"
	"github.com/TuftsBCB/seq"
)

// Role tags a SequenceSet as the motif-bearing population or the null population.
type Role int

const (
	// Positive is the population the motifs are discovered in
	Positive Role = iota

	// Background is the null population the positives are contrasted against
	Background
)

// Sequence is a single named sequence over a fixed alphabet. Sequences are
// never mutated in place; transformations produce new values.
type Sequence struct {
	Header   string
	Residues string
}

// SequenceSet is an ordered collection of sequences tagged by role.
type SequenceSet struct {
	Role Role
	Seqs []Sequence
}

// dnaResidues covers the unambiguous nucleotide alphabet plus N
const dnaResidues = "ACGTNU"

// proteinAlphabet is the alphabet used when a set isn't plain DNA/RNA
const proteinAlphabet = "ACDEFGHIKLMNPQRSTVWY"

// ReadFasta loads an ordered SequenceSet from a FASTA file. An empty or
// unreadable file is an InputError
func ReadFasta(path string, role Role) (SequenceSet, error) {
	set := SequenceSet{Role: role}

	f, err := os.Open(path)
	if err != nil {
		return set, &InputError{Path: path, Err: err}
	}
	defer f.Close()

	reader := fasta.NewReader(f)
	for {
		s, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return set, &InputError{Path: path, Err: err}
		}
		set.Seqs = append(set.Seqs, Sequence{
			Header:   s.Name,
			Residues: strings.ToUpper(string(s.Bytes())),
		})
	}

	if len(set.Seqs) == 0 {
		return set, &InputError{Path: path, Err: errEmptyFile}
	}
	return set, nil
}

// WriteFasta writes sequences to w in FASTA format
func WriteFasta(w io.Writer, seqs []Sequence) error {
	writer := fasta.NewWriter(w)
	for _, s := range seqs {
		if err := writer.Write(seq.NewSequenceString(s.Header, s.Residues)); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// Alphabet returns the residue alphabet of a sequence set: the nucleotide
// alphabet when every residue is a nucleotide code, the amino-acid alphabet
// otherwise. Motif regexes and null models are built over this alphabet.
func (set SequenceSet) Alphabet() string {
	for _, s := range set.Seqs {
		for i := 0; i < len(s.Residues); i++ {
			if !strings.ContainsRune(dnaResidues, rune(s.Residues[i])) {
				return proteinAlphabet
			}
		}
	}
	return "ACGT"
}

// ResidueFreqs returns the relative residue frequencies across the set.
func (set SequenceSet) ResidueFreqs() map[byte]float64 {
	counts := make(map[byte]float64)
	total := 0.0
	for _, s := range set.Seqs {
		for i := 0; i < len(s.Residues); i++ {
			counts[s.Residues[i]]++
			total++
		}
	}
	for r := range counts {
		counts[r] /= total
	}
	return counts
}
