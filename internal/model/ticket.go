package model

import "time"

// Ticket is a row of the ticket table. The passenger is referenced either by
// PassengerID or by an in-memory Passenger.
type Ticket struct {
	ID               int64      `json:"id"`
	DepartureAirport string     `json:"departure_airport" validate:"required,max=100"`
	ArrivalAirport   string     `json:"arrival_airport" validate:"required,max=100"`
	DepartureDate    time.Time  `json:"departure_date" validate:"required"`
	ArrivalDate      time.Time  `json:"arrival_date" validate:"required,gtfield=DepartureDate"`
	PurchaseDate     time.Time  `json:"purchase_date"`
	PassengerID      int64      `json:"passenger_id"`
	Passenger        *Passenger `json:"passenger,omitempty" validate:"-"`
}

// SetPassenger attaches p and adopts its id.
func (t *Ticket) SetPassenger(p *Passenger) {
	t.Passenger = p
	if p == nil {
		t.PassengerID = 0
		return
	}
	t.PassengerID = p.ID
}

// ResolvePassengerID returns the explicit PassengerID, falling back to the id
// of the attached Passenger.
func (t *Ticket) ResolvePassengerID() (int64, bool) {
	if t.PassengerID != 0 {
		return t.PassengerID, true
	}
	if t.Passenger != nil && t.Passenger.ID != 0 {
		return t.Passenger.ID, true
	}
	return 0, false
}
