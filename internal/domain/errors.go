package domain

import "errors"

var (
	// No place survived filtering and selection.
	ErrNoCandidatesFound = errors.New("no candidates found")

	// Even the minimal journey exceeds the duration or budget cap.
	// Returned together with that minimal journey.
	ErrInfeasibleConstraints = errors.New("infeasible constraints")

	ErrInvalidConstraints = errors.New("invalid constraints")

	// The travel-cost provider failed; callers recover with geometric estimates.
	ErrProviderUnavailable = errors.New("travel cost provider unavailable")

	// The matrix has no usable cell for the requested pair.
	ErrUnreachablePair = errors.New("unreachable pair")
)
