package cluster

import (
	"errors"
	"fmt"
)

var (
	// ErrLinkage is the root of every clustering failure.
	ErrLinkage = errors.New("cluster: linkage failed")

	// ErrUnknownMethod is returned for a linkage method outside the fixed set.
	ErrUnknownMethod = fmt.Errorf("%w: unknown method", ErrLinkage)

	// ErrAsymmetric is returned when the dissimilarity matrix is not symmetric.
	ErrAsymmetric = fmt.Errorf("%w: matrix is not symmetric", ErrLinkage)

	// ErrNonZeroDiagonal is returned when a dissimilarity diagonal entry is not zero.
	ErrNonZeroDiagonal = fmt.Errorf("%w: diagonal is not zero", ErrLinkage)

	// ErrNonFinite is returned for NaN or infinite distances.
	ErrNonFinite = fmt.Errorf("%w: distance is not finite", ErrLinkage)

	// ErrTooFew is returned when fewer than two observations are clustered.
	ErrTooFew = fmt.Errorf("%w: need at least two observations", ErrLinkage)

	// ErrLabelCount is returned when labels do not match the leaves of a tree.
	ErrLabelCount = errors.New("cluster: label count does not match leaves")
)
