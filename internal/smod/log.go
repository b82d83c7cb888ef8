package smod

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// maxLogSize is when the active log file is rotated aside.
const maxLogSize = 5 << 20

// NewLogger returns a logger writing progress to stdout and to a
// size-rotated log file inside dir. Configured once before the first fit;
// every stage logs through it.
func NewLogger(dir string) (*log.Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "smod.log")
	rotateLog(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return log.New(io.MultiWriter(os.Stdout, f), "", log.LstdFlags), nil
}

// rotateLog moves an oversized log aside, keeping one backup.
func rotateLog(path string) {
	if st, err := os.Stat(path); err == nil && st.Size() > maxLogSize {
		os.Rename(path, path+".1")
	}
}
