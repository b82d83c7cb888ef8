package smod

import (
	"encoding/gob"
	"fmt"
	"os"
)

// modelVersion guards saved state against incompatible readers.
const modelVersion = 1

// Model is the fitted, persistable pipeline state: the background and
// clustering statistics from a fit, plus the motif set once computed.
// Read-only after the fit completes; Predict and Decompose may run
// concurrently against the same model.
type Model struct {
	Version  int
	Params   Params
	Alphabet string

	// merged k-mer statistics of the two populations
	PosKmers FeatureVector
	NegKmers FeatureVector
	PosTotal float64
	NegTotal float64

	// background residue composition, the decomposition null model
	BgFreqs map[byte]float64

	// learned partition
	Centroids []FeatureVector

	// size of the positive population the fit saw
	NumPos int

	// final motif set, present once SelectMotives has run
	Motives MotifSet
}

// Save writes the model to path. The write goes through a temporary file
// and a rename so a crash never leaves a truncated model behind.
func (m *Model) Save(path string) error {
	m.Version = modelVersion

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		os.Remove(tmp)
		return &PersistenceError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &PersistenceError{Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	return nil
}

// Load reconstructs a model from a saved state. Predict, Decompose, and
// SelectMotives behave identically to the model that was saved.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &PersistenceError{Path: path, Err: err}
	}
	defer f.Close()

	var m Model
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, &PersistenceError{Path: path, Err: err}
	}
	if m.Version != modelVersion {
		return nil, &PersistenceError{
			Path: path,
			Err:  fmt.Errorf("model version %d, want %d", m.Version, modelVersion),
		}
	}
	return &m, nil
}
