// Package vhierrors defines the sentinel error kinds the inference core can
// surface, per the error handling design: the core never retries and never
// swallows, it only wraps and returns.
package vhierrors

import "errors"

var (
	// ErrEmptyInput is returned when the snapshot vector is empty even after
	// prepending the synthetic Empty root. This should not occur in practice.
	ErrEmptyInput = errors.New("vhi: empty snapshot input")

	// ErrDuplicateName is returned when two input snapshots share a display
	// name, or an input snapshot is itself named "Empty".
	ErrDuplicateName = errors.New("vhi: duplicate snapshot name")

	// ErrMSANotTree is returned when the MSA solver produces a parent vector
	// with other than exactly one root-less vertex. It indicates algorithm
	// misuse or a numeric pathology in the weight matrix.
	ErrMSANotTree = errors.New("vhi: msa result is not a tree")

	// ErrForestAssembly is returned when the forest assembler finds a
	// snapshot with no assigned slot, or sees one consumed twice.
	ErrForestAssembly = errors.New("vhi: forest assembly failed")
)
