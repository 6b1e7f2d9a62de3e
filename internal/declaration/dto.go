package declaration

// CreateDeclarationRequest represents the request to declare tips for a shift
type CreateDeclarationRequest struct {
	RestaurantID      int64  `json:"restaurant_id" validate:"required"`
	DeclarationDate   string `json:"declaration_date" validate:"required"` // YYYY-MM-DD
	CashAmountCents   int64  `json:"cash_amount_cents" validate:"gte=0"`
	CreditAmountCents int64  `json:"credit_amount_cents" validate:"gte=0"`
}

// DeclarationResponse represents the response for a declaration
type DeclarationResponse struct {
	ID                int64  `json:"id"`
	RestaurantID      int64  `json:"restaurant_id"`
	EmployeeID        int64  `json:"employee_id"`
	DeclarationDate   string `json:"declaration_date"`
	CashAmountCents   int64  `json:"cash_amount_cents"`
	CreditAmountCents int64  `json:"credit_amount_cents"`
	TotalCents        int64  `json:"total_cents"`
	CreatedAt         string `json:"created_at"`
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02T15:04:05Z"
)

// ToResponse converts a Declaration model to a DeclarationResponse DTO
func (d *Declaration) ToResponse() *DeclarationResponse {
	return &DeclarationResponse{
		ID:                d.ID,
		RestaurantID:      d.RestaurantID,
		EmployeeID:        d.EmployeeID,
		DeclarationDate:   d.DeclarationDate.Format(dateLayout),
		CashAmountCents:   d.CashAmountCents,
		CreditAmountCents: d.CreditAmountCents,
		TotalCents:        d.TotalCents(),
		CreatedAt:         d.CreatedAt.Format(timeLayout),
	}
}
