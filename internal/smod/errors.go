package smod

import (
	"errors"
	"fmt"
)

var errEmptyFile = errors.New("no sequences found")

// InputError is a missing, unreadable, or empty sequence file. Always fatal.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// InvalidParameterError is an out-of-range or inconsistent setting.
// Parameters are validated before any fitting work begins.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// InsufficientDataError means a population, cluster, or motif has too few
// members to cluster, align, or compute statistics on. Recovered locally by
// discarding the offending cluster or motif; fatal only when nothing is left.
type InsufficientDataError struct {
	Stage  string
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data: %s", e.Stage, e.Reason)
}

// PersistenceError is a corrupt or incompatible saved model. Fatal on load.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
