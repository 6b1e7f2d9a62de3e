package allocation

import "fmt"

// =============================================================================
// MANUAL OVERRIDE
// Pins one participant's amount and rebalances the rest so the pool total
// is conserved exactly
// =============================================================================

// ApplyManualOverride sets the given employee's share to newAmountCents,
// marks it as manually overridden, and recomputes every non-overridden share
// proportionally to its current amount so the sum still equals totalCents.
// Shares already marked as overridden (from earlier calls) are left
// untouched and excluded from rebalancing.
//
// When every non-overridden share currently holds zero, the residual is
// spread evenly instead, remainder cents going to the earliest shares in
// input order.
func ApplyManualOverride(shares []Share, employeeID int64, newAmountCents int64, totalCents int64) ([]Share, error) {
	if newAmountCents < 0 || totalCents < 0 {
		return nil, fmt.Errorf("%w: amount %d", ErrInvalidInput, newAmountCents)
	}

	idx := -1
	for i, s := range shares {
		if s.EmployeeID == employeeID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("%w: employee %d", ErrParticipantNotFound, employeeID)
	}

	out := make([]Share, len(shares))
	copy(out, shares)
	out[idx].AmountCents = newAmountCents
	out[idx].ManualOverride = true

	// Amount left for the shares that are still auto-balanced.
	residual := totalCents
	var free []int
	for i, s := range out {
		if s.ManualOverride {
			residual -= s.AmountCents
			continue
		}
		free = append(free, i)
	}

	if residual < 0 {
		return nil, fmt.Errorf("%w: overridden amounts exceed the pool total", ErrInvalidInput)
	}
	if len(free) == 0 {
		if residual != 0 {
			return nil, fmt.Errorf("%w: every share is overridden and the amounts do not reconcile", ErrInvalidInput)
		}
		return out, nil
	}

	var currentSum int64
	weights := make([]float64, len(free))
	for i, fi := range free {
		weights[i] = float64(out[fi].AmountCents)
		currentSum += out[fi].AmountCents
	}

	var amounts []int64
	if currentSum == 0 {
		n := int64(len(free))
		base, remainder := residual/n, residual%n
		amounts = make([]int64, len(free))
		for i := range amounts {
			amounts[i] = base
			if int64(i) < remainder {
				amounts[i]++
			}
		}
	} else {
		var err error
		amounts, err = distributeByWeight(residual, weights)
		if err != nil {
			return nil, err
		}
	}

	for i, fi := range free {
		out[fi].AmountCents = amounts[i]
	}

	return out, nil
}

// ClearManualOverride removes the override flag from the given employee's
// share without changing any amounts; the next automatic recomputation will
// include it again.
func ClearManualOverride(shares []Share, employeeID int64) ([]Share, error) {
	out := make([]Share, len(shares))
	copy(out, shares)
	for i := range out {
		if out[i].EmployeeID == employeeID {
			out[i].ManualOverride = false
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: employee %d", ErrParticipantNotFound, employeeID)
}
