package io

import (
	"errors"
	"fmt"
)

var (
	// ErrInput is the root of every failure to load the matrix or label file.
	ErrInput = errors.New("io: invalid input")

	// ErrEmpty is returned for a missing-content file.
	ErrEmpty = fmt.Errorf("%w: file is empty", ErrInput)

	// ErrParse is returned when a matrix entry is not a number at all.
	ErrParse = fmt.Errorf("%w: cannot parse entry", ErrInput)

	// ErrShape is returned for ragged rows or a non-square matrix.
	ErrShape = fmt.Errorf("%w: matrix is not square", ErrInput)

	// ErrLabelCount is returned when labels and matrix rows disagree.
	ErrLabelCount = fmt.Errorf("%w: label count does not match matrix", ErrInput)

	// ErrWrite is returned when an output file cannot be written.
	ErrWrite = errors.New("io: cannot write output")
)
