package domain

import "fmt"

// Hard caps a journey must respect.
type Constraints struct {
	MaxDurationMinutes int
	MaxBudget          float64
}

func (c Constraints) Validate() error {
	if c.MaxDurationMinutes <= 0 {
		return fmt.Errorf("%w: max duration must be positive (got %d)", ErrInvalidConstraints, c.MaxDurationMinutes)
	}
	if c.MaxBudget <= 0 {
		return fmt.Errorf("%w: max budget must be positive (got %v)", ErrInvalidConstraints, c.MaxBudget)
	}
	return nil
}
