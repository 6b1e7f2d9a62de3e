package allocation

import "fmt"

// =============================================================================
// HOURS-WEIGHTED SPLIT STRATEGY
// Divides the pool total proportionally to hours worked
// =============================================================================

// HoursStrategy implements the Strategy interface for hours-weighted splits
type HoursStrategy struct{}

// Method returns the allocation method identifier
func (s *HoursStrategy) Method() Method {
	return MethodByHours
}

// Validate checks if the inputs are valid for an hours-weighted split
func (s *HoursStrategy) Validate(totalCents int64, participants []Participant) error {
	if totalCents < 0 {
		return fmt.Errorf("%w: total %d", ErrInvalidInput, totalCents)
	}
	if len(participants) == 0 {
		return ErrNoEligibleParticipants
	}
	for _, p := range participants {
		if p.Hours == nil {
			return fmt.Errorf("%w: hours required for employee %d", ErrInvalidInput, p.EmployeeID)
		}
		if *p.Hours < 0 {
			return fmt.Errorf("%w: negative hours for employee %d", ErrInvalidInput, p.EmployeeID)
		}
	}
	return nil
}

// Calculate divides the total proportionally to each participant's hours
// using the largest-remainder method. Participants with zero hours receive
// zero; a nonzero total with all-zero hours has nobody to carry a share and
// fails with ErrNoEligibleParticipants.
func (s *HoursStrategy) Calculate(totalCents int64, participants []Participant) ([]Share, error) {
	if err := s.Validate(totalCents, participants); err != nil {
		return nil, err
	}

	weights := make([]float64, len(participants))
	for i, p := range participants {
		weights[i] = *p.Hours
	}

	amounts, err := distributeByWeight(totalCents, weights)
	if err != nil {
		return nil, err
	}

	return sharesFromAmounts(participants, amounts), nil
}
