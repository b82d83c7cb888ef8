package smod

// Window is a contiguous subsequence candidate. The begin/end range is
// half-open and its length is bounded by the configured window sizes.
type Window struct {
	Parent   string
	Begin    int
	End      int
	Residues string
}

// Len returns the window width.
func (w Window) Len() int { return w.End - w.Begin }

// windows slides every window of size [minSize, maxSize] over a sequence.
// Sequences shorter than minSize yield nothing.
func windows(s Sequence, minSize, maxSize int) []Window {
	var out []Window
	n := len(s.Residues)
	for size := minSize; size <= maxSize; size++ {
		for begin := 0; begin+size <= n; begin++ {
			out = append(out, Window{
				Parent:   s.Header,
				Begin:    begin,
				End:      begin + size,
				Residues: s.Residues[begin : begin+size],
			})
		}
	}
	return out
}

// Cluster is one group of the learned partition. Ids are dense, unique, and
// stable within a single fit/predict pass.
type Cluster struct {
	ID      int
	Windows []Window
}

// parents returns the distinct originating sequence headers of the
// cluster's windows, in first-seen order.
func (c *Cluster) parents() []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range c.Windows {
		if !seen[w.Parent] {
			seen[w.Parent] = true
			out = append(out, w.Parent)
		}
	}
	return out
}
