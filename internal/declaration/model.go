package declaration

import "time"

// Declaration represents an employee's self-reported cash and credit tips
// for a shift, recorded at clock-out. Declarations are independent of any
// manager-approved pool; the payroll aggregator decides which source wins.
type Declaration struct {
	ID                int64     `json:"id"`
	RestaurantID      int64     `json:"restaurant_id"`
	EmployeeID        int64     `json:"employee_id"`
	DeclarationDate   time.Time `json:"declaration_date"`
	CashAmountCents   int64     `json:"cash_amount_cents"`
	CreditAmountCents int64     `json:"credit_amount_cents"`
	CreatedAt         time.Time `json:"created_at"`
}

// TotalCents returns the declared cash plus credit tips
func (d *Declaration) TotalCents() int64 {
	return d.CashAmountCents + d.CreditAmountCents
}
