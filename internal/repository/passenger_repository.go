package repository

import (
	"context"
	"fmt"
	"time"

	"go-ticket-store/internal/datasource"
	"go-ticket-store/internal/mapper"
	"go-ticket-store/internal/model"
)

const (
	selectPassenger = "SELECT " + mapper.PassengerColumns + " FROM passenger"

	insertPassenger = "INSERT INTO passenger (first_name, last_name, male, birth_date, last_purchase) VALUES "

	updatePassenger = "UPDATE passenger SET first_name = $1, last_name = $2, male = $3, birth_date = $4, last_purchase = $5 WHERE id = $6"

	updatePassengers = "UPDATE passenger AS p SET first_name = v.first_name, last_name = v.last_name, male = v.male, " +
		"birth_date = v.birth_date, last_purchase = v.last_purchase FROM (VALUES %s) " +
		"AS v(id, first_name, last_name, male, birth_date, last_purchase) WHERE p.id = v.id"
)

var passengerUpdateCasts = []string{"bigint", "varchar", "varchar", "boolean", "date", "timestamp"}

type PassengerRepository struct {
	Repository[model.Passenger]
}

func NewPassengerRepository(provider datasource.Provider) *PassengerRepository {
	return &PassengerRepository{
		Repository: Repository[model.Passenger]{
			provider: provider,
			mapper:   mapper.NewPassengerMapper(),
		},
	}
}

// FindByID returns nil when no passenger has id.
func (r *PassengerRepository) FindByID(ctx context.Context, id int64) (*model.Passenger, error) {
	return r.findOne(ctx, "find passenger by id", selectPassenger+" WHERE id = $1", id)
}

func (r *PassengerRepository) FindByMale(ctx context.Context, male bool) ([]*model.Passenger, error) {
	return r.findMany(ctx, "find passengers by sex", selectPassenger+" WHERE male = $1 ORDER BY id", male)
}

func (r *PassengerRepository) FindByBirthDate(ctx context.Context, birthDate time.Time) ([]*model.Passenger, error) {
	return r.findMany(ctx, "find passengers by birth date", selectPassenger+" WHERE birth_date = $1 ORDER BY id", birthDate)
}

func (r *PassengerRepository) FindByFullName(ctx context.Context, firstName, lastName string) ([]*model.Passenger, error) {
	return r.findMany(ctx, "find passengers by full name",
		selectPassenger+" WHERE first_name = $1 AND last_name = $2 ORDER BY id", firstName, lastName)
}

func (r *PassengerRepository) FindAll(ctx context.Context) ([]*model.Passenger, error) {
	return r.findMany(ctx, "find all passengers", selectPassenger+" ORDER BY id")
}

// Create inserts p and stores the generated id on it.
func (r *PassengerRepository) Create(ctx context.Context, p *model.Passenger) (*model.Passenger, error) {
	id, err := r.insertReturningID(ctx, "create passenger",
		insertPassenger+placeholders(1, untyped(5))+" RETURNING id", passengerArgs(p)...)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

// CreateMany inserts every passenger in one statement. Generated ids are
// assigned back in input order.
func (r *PassengerRepository) CreateMany(ctx context.Context, passengers []*model.Passenger) error {
	if len(passengers) == 0 {
		return nil
	}

	args := make([]any, 0, len(passengers)*5)
	for _, p := range passengers {
		args = append(args, passengerArgs(p)...)
	}
	query := insertPassenger + placeholders(len(passengers), untyped(5)) + " RETURNING id"

	ids, err := r.insertReturningIDs(ctx, "create passengers", query, args...)
	if err != nil {
		return err
	}
	// ids are assigned by position. PostgreSQL returns RETURNING rows of a
	// single multi-row VALUES insert in input order, though it does not
	// document that; the count check catches a short or long result.
	if len(ids) != len(passengers) {
		return fail("create passengers", fmt.Errorf("store returned %d ids for %d rows", len(ids), len(passengers)))
	}
	for i, id := range ids {
		passengers[i].ID = id
	}
	return nil
}

// Update replaces every column of the row with p's id. Fields left at their
// zero value overwrite what is stored. A missing row is not an error.
func (r *PassengerRepository) Update(ctx context.Context, p *model.Passenger) (*model.Passenger, error) {
	args := append(passengerArgs(p), p.ID)
	if _, err := r.exec(ctx, "update passenger", updatePassenger, args...); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PassengerRepository) UpdateMany(ctx context.Context, passengers []*model.Passenger) error {
	if len(passengers) == 0 {
		return nil
	}

	args := make([]any, 0, len(passengers)*6)
	for _, p := range passengers {
		args = append(args, p.ID)
		args = append(args, passengerArgs(p)...)
	}
	query := fmt.Sprintf(updatePassengers, placeholders(len(passengers), passengerUpdateCasts))

	_, err := r.exec(ctx, "update passengers", query, args...)
	return err
}

func (r *PassengerRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.exec(ctx, "delete passenger", "DELETE FROM passenger WHERE id = $1", id)
	return err
}

func (r *PassengerRepository) DeleteAll(ctx context.Context) error {
	_, err := r.exec(ctx, "delete all passengers", "DELETE FROM passenger")
	return err
}

func passengerArgs(p *model.Passenger) []any {
	return []any{p.FirstName, p.LastName, p.Male, p.BirthDate, nullTime(p.LastPurchase)}
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
