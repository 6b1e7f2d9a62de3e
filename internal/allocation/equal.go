package allocation

import "fmt"

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the pool total equally among all participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Method returns the allocation method identifier
func (s *EqualStrategy) Method() Method {
	return MethodEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(totalCents int64, participants []Participant) error {
	if totalCents < 0 {
		return fmt.Errorf("%w: total %d", ErrInvalidInput, totalCents)
	}
	if len(participants) == 0 {
		return ErrNoEligibleParticipants
	}
	return nil
}

// Calculate divides the total evenly among all participants. The integer
// remainder (total mod n) is handed out one cent at a time to the first
// participants in input order, so identical inputs always produce identical
// amounts.
func (s *EqualStrategy) Calculate(totalCents int64, participants []Participant) ([]Share, error) {
	if err := s.Validate(totalCents, participants); err != nil {
		return nil, err
	}

	n := int64(len(participants))
	base := totalCents / n
	remainder := totalCents % n

	shares := make([]Share, len(participants))
	for i, p := range participants {
		amount := base
		if int64(i) < remainder {
			amount++
		}
		shares[i] = Share{EmployeeID: p.EmployeeID, AmountCents: amount}
	}

	return shares, nil
}
