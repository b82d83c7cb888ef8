package smod

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// alignPreviewRows caps how much of an alignment the report shows inline.
const alignPreviewRows = 10

// NewRunID returns a short identifier stamped into the log and report so
// artifacts from the same run can be matched up.
func NewRunID() string {
	return uuid.New().String()[:8]
}

// Report renders the motif set as a Markdown document: per motif its
// consensus pattern, occurrence statistics, and a preview of the trimmed
// alignment.
func Report(w io.Writer, motives MotifSet, runID string) error {
	if _, err := fmt.Fprintf(w, "# smod motif report\n\nrun `%s`, %d motives\n", runID, len(motives)); err != nil {
		return err
	}
	for _, m := range motives {
		fmt.Fprintf(w, "\n## motif %d\n\n", m.ClusterID)
		fmt.Fprintf(w, "- regex: `%s`\n", m.Regex)
		fmt.Fprintf(w, "- frequency: %.4f\n", m.Frequency)
		fmt.Fprintf(w, "- position std: %.2f\n", m.PositionStd)
		fmt.Fprintf(w, "- members: %d\n", len(m.Seqs))
		fmt.Fprintf(w, "- alignment: %d rows x %d columns\n", len(m.AlignSeqs), alignWidth(m.AlignSeqs))

		fmt.Fprint(w, "\n```\n")
		for i, row := range m.TrimmedAlignSeqs {
			if i == alignPreviewRows {
				fmt.Fprintf(w, "... %d more\n", len(m.TrimmedAlignSeqs)-alignPreviewRows)
				break
			}
			fmt.Fprintln(w, row)
		}
		if _, err := fmt.Fprint(w, "```\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteHits drains a decomposition stream into the record file, one line
// per hit: header, begin, end, p-value, subsequence.
func WriteHits(w io.Writer, hits <-chan Hit) (int, error) {
	n := 0
	for h := range hits {
		if _, err := fmt.Fprintf(w, "%s %d %d %g %s\n",
			h.Header, h.Begin, h.End, h.PValue, h.Subsequence); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// WriteMotifFiles writes, per motif, a FASTA file of the member
// subsequences and a FASTA file of the trimmed alignment.
func WriteMotifFiles(dir string, motives MotifSet) error {
	for _, m := range motives {
		if err := writeFastaFile(filepath.Join(dir, fmt.Sprintf("motif_%d.fasta", m.ClusterID)), m.Seqs); err != nil {
			return err
		}

		rows := make([]Sequence, len(m.TrimmedAlignSeqs))
		for i, row := range m.TrimmedAlignSeqs {
			rows[i] = Sequence{
				Header:   fmt.Sprintf("motif_%d_row_%d", m.ClusterID, i),
				Residues: row,
			}
		}
		if err := writeFastaFile(filepath.Join(dir, fmt.Sprintf("motif_%d_align.fasta", m.ClusterID)), rows); err != nil {
			return err
		}
	}
	return nil
}

func writeFastaFile(path string, seqs []Sequence) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteFasta(f, seqs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func alignWidth(rows []string) int {
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0])
}
