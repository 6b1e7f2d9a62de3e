package allocation

import "fmt"

// =============================================================================
// ROLE-WEIGHTED SPLIT STRATEGY
// Divides the pool total by configured per-role multipliers
// (e.g. bartender 1.5x), optionally scaled by hours worked
// =============================================================================

// RoleWeightStrategy implements the Strategy interface for role-weighted splits
type RoleWeightStrategy struct{}

// Method returns the allocation method identifier
func (s *RoleWeightStrategy) Method() Method {
	return MethodRoleWeight
}

// Validate checks if the inputs are valid for a role-weighted split
func (s *RoleWeightStrategy) Validate(totalCents int64, participants []Participant) error {
	if totalCents < 0 {
		return fmt.Errorf("%w: total %d", ErrInvalidInput, totalCents)
	}
	if len(participants) == 0 {
		return ErrNoEligibleParticipants
	}
	for _, p := range participants {
		if p.RoleWeight == nil {
			return fmt.Errorf("%w: role weight required for employee %d", ErrInvalidInput, p.EmployeeID)
		}
		if *p.RoleWeight < 0 {
			return fmt.Errorf("%w: negative role weight for employee %d", ErrInvalidInput, p.EmployeeID)
		}
		if p.Hours != nil && *p.Hours < 0 {
			return fmt.Errorf("%w: negative hours for employee %d", ErrInvalidInput, p.EmployeeID)
		}
	}
	return nil
}

// Calculate divides the total proportionally to each participant's effective
// weight: role weight times hours when hours are present, the bare role
// weight otherwise. Uses the same largest-remainder machinery as the
// hours-weighted strategy.
func (s *RoleWeightStrategy) Calculate(totalCents int64, participants []Participant) ([]Share, error) {
	if err := s.Validate(totalCents, participants); err != nil {
		return nil, err
	}

	weights := make([]float64, len(participants))
	for i, p := range participants {
		w := *p.RoleWeight
		if p.Hours != nil && *p.Hours > 0 {
			w *= *p.Hours
		}
		weights[i] = w
	}

	amounts, err := distributeByWeight(totalCents, weights)
	if err != nil {
		return nil, err
	}

	return sharesFromAmounts(participants, amounts), nil
}
