package repository

import (
	"context"
	"fmt"

	"go-ticket-store/internal/datasource"
	"go-ticket-store/internal/mapper"
	"go-ticket-store/internal/model"
	"go-ticket-store/internal/utils/apperrors"
)

const (
	selectTicket = "SELECT " + mapper.TicketColumns + " FROM ticket"

	insertTicket = "INSERT INTO ticket (departure_airport, arrival_airport, departure_date, arrival_date, purchase_date, passenger_id) VALUES "

	updateTicket = "UPDATE ticket SET departure_airport = $1, arrival_airport = $2, departure_date = $3, " +
		"arrival_date = $4, purchase_date = $5, passenger_id = $6 WHERE id = $7"

	updateTickets = "UPDATE ticket AS t SET departure_airport = v.departure_airport, arrival_airport = v.arrival_airport, " +
		"departure_date = v.departure_date, arrival_date = v.arrival_date, purchase_date = v.purchase_date, " +
		"passenger_id = v.passenger_id FROM (VALUES %s) " +
		"AS v(id, departure_airport, arrival_airport, departure_date, arrival_date, purchase_date, passenger_id) WHERE t.id = v.id"
)

var ticketUpdateCasts = []string{"bigint", "varchar", "varchar", "timestamp", "timestamp", "timestamp", "bigint"}

type TicketRepository struct {
	Repository[model.Ticket]
}

func NewTicketRepository(provider datasource.Provider) *TicketRepository {
	return &TicketRepository{
		Repository: Repository[model.Ticket]{
			provider: provider,
			mapper:   mapper.NewTicketMapper(),
		},
	}
}

// FindByID returns nil when no ticket has id. The Passenger of the result is
// not loaded, only PassengerID.
func (r *TicketRepository) FindByID(ctx context.Context, id int64) (*model.Ticket, error) {
	return r.findOne(ctx, "find ticket by id", selectTicket+" WHERE id = $1", id)
}

func (r *TicketRepository) FindByPassengerID(ctx context.Context, passengerID int64) ([]*model.Ticket, error) {
	return r.findMany(ctx, "find tickets by passenger", selectTicket+" WHERE passenger_id = $1 ORDER BY id", passengerID)
}

func (r *TicketRepository) FindAll(ctx context.Context) ([]*model.Ticket, error) {
	return r.findMany(ctx, "find all tickets", selectTicket+" ORDER BY id")
}

// Create inserts t and stores the generated id on it. t must reference its
// passenger by PassengerID or by a persisted Passenger.
func (r *TicketRepository) Create(ctx context.Context, t *model.Ticket) (*model.Ticket, error) {
	const op = "create ticket"

	args, err := ticketArgs(op, t)
	if err != nil {
		return nil, err
	}
	id, err := r.insertReturningID(ctx, op, insertTicket+placeholders(1, untyped(6))+" RETURNING id", args...)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return t, nil
}

// CreateMany inserts every ticket in one statement. Passenger references are
// checked for all tickets before anything is sent.
func (r *TicketRepository) CreateMany(ctx context.Context, tickets []*model.Ticket) error {
	const op = "create tickets"
	if len(tickets) == 0 {
		return nil
	}

	args := make([]any, 0, len(tickets)*6)
	for _, t := range tickets {
		row, err := ticketArgs(op, t)
		if err != nil {
			return err
		}
		args = append(args, row...)
	}
	query := insertTicket + placeholders(len(tickets), untyped(6)) + " RETURNING id"

	ids, err := r.insertReturningIDs(ctx, op, query, args...)
	if err != nil {
		return err
	}
	// ids are assigned by position. PostgreSQL returns RETURNING rows of a
	// single multi-row VALUES insert in input order, though it does not
	// document that; the count check catches a short or long result.
	if len(ids) != len(tickets) {
		return fail(op, fmt.Errorf("store returned %d ids for %d rows", len(ids), len(tickets)))
	}
	for i, id := range ids {
		tickets[i].ID = id
	}
	return nil
}

// Update replaces every column of the row with t's id. A missing row is not
// an error.
func (r *TicketRepository) Update(ctx context.Context, t *model.Ticket) (*model.Ticket, error) {
	const op = "update ticket"

	args, err := ticketArgs(op, t)
	if err != nil {
		return nil, err
	}
	if _, err := r.exec(ctx, op, updateTicket, append(args, t.ID)...); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TicketRepository) UpdateMany(ctx context.Context, tickets []*model.Ticket) error {
	const op = "update tickets"
	if len(tickets) == 0 {
		return nil
	}

	args := make([]any, 0, len(tickets)*7)
	for _, t := range tickets {
		row, err := ticketArgs(op, t)
		if err != nil {
			return err
		}
		args = append(args, t.ID)
		args = append(args, row...)
	}
	query := fmt.Sprintf(updateTickets, placeholders(len(tickets), ticketUpdateCasts))

	_, err := r.exec(ctx, op, query, args...)
	return err
}

func (r *TicketRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.exec(ctx, "delete ticket", "DELETE FROM ticket WHERE id = $1", id)
	return err
}

func (r *TicketRepository) DeleteAll(ctx context.Context) error {
	_, err := r.exec(ctx, "delete all tickets", "DELETE FROM ticket")
	return err
}

func ticketArgs(op string, t *model.Ticket) ([]any, error) {
	passengerID, ok := t.ResolvePassengerID()
	if !ok {
		return nil, fail(op, apperrors.ErrPassengerUnresolved)
	}
	return []any{t.DepartureAirport, t.ArrivalAirport, t.DepartureDate, t.ArrivalDate, t.PurchaseDate, passengerID}, nil
}
