package mapper

import (
	"go-ticket-store/internal/model"
)

// TicketColumns is the select list TicketMapper decodes, in order.
const TicketColumns = "id, departure_airport, arrival_airport, departure_date, arrival_date, purchase_date, passenger_id"

type TicketMapper struct{}

func NewTicketMapper() *TicketMapper {
	return &TicketMapper{}
}

func (m *TicketMapper) MapOne(rows Rows) (*model.Ticket, error) {
	return mapOne(rows, scanTicket)
}

func (m *TicketMapper) MapMany(rows Rows) ([]*model.Ticket, error) {
	return mapMany(rows, scanTicket)
}

func scanTicket(rows Rows) (*model.Ticket, error) {
	var t model.Ticket
	err := rows.Scan(
		&t.ID,
		&t.DepartureAirport,
		&t.ArrivalAirport,
		&t.DepartureDate,
		&t.ArrivalDate,
		&t.PurchaseDate,
		&t.PassengerID,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
