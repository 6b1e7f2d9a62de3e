package allocation

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Method defines the allocation method used to split a tip pool
type Method string

const (
	MethodEqual      Method = "equal"
	MethodByHours    Method = "by_hours"
	MethodRoleWeight Method = "by_role_weight"
	MethodManual     Method = "manual"
)

// Participant represents one employee eligible for a share of the pool.
// Participant order is significant: it is the deterministic tie-break for
// remainder-cent distribution, so callers must pass a stably ordered roster.
type Participant struct {
	EmployeeID int64    `json:"employee_id"`
	Hours      *float64 `json:"hours,omitempty"`       // For by_hours and by_role_weight
	RoleWeight *float64 `json:"role_weight,omitempty"` // For by_role_weight
}

// Share represents the calculated amount for a single participant
type Share struct {
	EmployeeID     int64 `json:"employee_id"`
	AmountCents    int64 `json:"amount_cents"`
	ManualOverride bool  `json:"manual_override"`
}

// Strategy is the interface that all allocation strategies must implement
type Strategy interface {
	// Calculate computes the share amounts for all participants.
	// The returned amounts always sum to exactly totalCents.
	Calculate(totalCents int64, participants []Participant) ([]Share, error)

	// Method returns the method identifier for this strategy
	Method() Method

	// Validate checks if the inputs are valid for this strategy
	Validate(totalCents int64, participants []Participant) error
}

// Factory creates allocation strategies based on the requested method
type Factory struct{}

// NewStrategyFactory creates a new factory instance
func NewStrategyFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the method
func (f *Factory) Create(method Method) (Strategy, error) {
	switch method {
	case MethodEqual:
		return &EqualStrategy{}, nil
	case MethodByHours:
		return &HoursStrategy{}, nil
	case MethodRoleWeight:
		return &RoleWeightStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

// CreateFromString creates a strategy from a string method (useful for API requests)
func (f *Factory) CreateFromString(method string) (Strategy, error) {
	return f.Create(Method(method))
}

var (
	ErrInvalidInput           = errors.New("amounts, hours and weights cannot be negative")
	ErrNoEligibleParticipants = errors.New("no eligible participants to allocate to")
	ErrUnknownMethod          = errors.New("unknown allocation method")
	ErrParticipantNotFound    = errors.New("participant is not part of the split")
)

// distributeByWeight splits totalCents across entries proportionally to their
// weights using the largest-remainder method: each raw share is truncated to
// whole cents, then the leftover cents go one at a time to the entries with
// the largest truncated-off fraction. Zero-weight entries receive zero and
// never take remainder cents. Ties in fractional remainder are broken by
// input order.
//
// All amounts are integer cents; float64 is used only for the proportional
// ratio before truncation.
func distributeByWeight(totalCents int64, weights []float64) ([]int64, error) {
	var sum float64
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: weight %v", ErrInvalidInput, w)
		}
		sum += w
	}

	amounts := make([]int64, len(weights))
	if totalCents == 0 {
		return amounts, nil
	}
	if sum == 0 {
		return nil, ErrNoEligibleParticipants
	}

	type fraction struct {
		idx int
		rem float64
	}

	var allocated int64
	fractions := make([]fraction, 0, len(weights))
	for i, w := range weights {
		if w == 0 {
			continue
		}
		raw := float64(totalCents) * (w / sum)
		whole := int64(math.Floor(raw))
		amounts[i] = whole
		allocated += whole
		fractions = append(fractions, fraction{idx: i, rem: raw - float64(whole)})
	}

	// Stable sort keeps input order on equal remainders.
	sort.SliceStable(fractions, func(a, b int) bool {
		return fractions[a].rem > fractions[b].rem
	})

	for i := int64(0); i < totalCents-allocated; i++ {
		amounts[fractions[i%int64(len(fractions))].idx]++
	}

	return amounts, nil
}

// sharesFromAmounts pairs computed amounts back with their participants
func sharesFromAmounts(participants []Participant, amounts []int64) []Share {
	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{EmployeeID: p.EmployeeID, AmountCents: amounts[i]}
	}
	return shares
}
