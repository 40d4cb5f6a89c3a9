package mapper

import (
	"database/sql"

	"go-ticket-store/internal/model"
)

// PassengerColumns is the select list PassengerMapper decodes, in order.
const PassengerColumns = "id, first_name, last_name, male, birth_date, last_purchase"

type PassengerMapper struct{}

func NewPassengerMapper() *PassengerMapper {
	return &PassengerMapper{}
}

func (m *PassengerMapper) MapOne(rows Rows) (*model.Passenger, error) {
	return mapOne(rows, scanPassenger)
}

func (m *PassengerMapper) MapMany(rows Rows) ([]*model.Passenger, error) {
	return mapMany(rows, scanPassenger)
}

func scanPassenger(rows Rows) (*model.Passenger, error) {
	var (
		p            model.Passenger
		lastPurchase sql.NullTime
	)
	if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Male, &p.BirthDate, &lastPurchase); err != nil {
		return nil, err
	}
	if lastPurchase.Valid {
		p.LastPurchase = &lastPurchase.Time
	}
	return &p, nil
}
