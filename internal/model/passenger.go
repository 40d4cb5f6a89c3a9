package model

import "time"

// Passenger is a row of the passenger table. ID is zero until the store
// assigns one on creation.
type Passenger struct {
	ID           int64      `json:"id"`
	FirstName    string     `json:"first_name" validate:"required,max=100"`
	LastName     string     `json:"last_name" validate:"required,max=100"`
	Male         bool       `json:"male"`
	BirthDate    time.Time  `json:"birth_date" validate:"required"`
	LastPurchase *time.Time `json:"last_purchase,omitempty"`
}

// IsNew reports whether the passenger has not been persisted yet.
func (p *Passenger) IsNew() bool {
	return p.ID == 0
}
