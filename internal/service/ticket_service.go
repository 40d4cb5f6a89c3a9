package service

import (
	"context"
	"fmt"
	"time"

	"go-ticket-store/internal/config/validation"
	"go-ticket-store/internal/model"
	"go-ticket-store/internal/repository"
	"go-ticket-store/internal/utils/apperrors"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type TicketService struct {
	uow                 *repository.UnitOfWork
	passengerRepository *repository.PassengerRepository
	ticketRepository    *repository.TicketRepository
	validation          *validation.Validation
	log                 *logrus.Logger
	tracer              trace.Tracer
	now                 func() time.Time
}

func NewTicketService(
	uow *repository.UnitOfWork,
	passengerRepository *repository.PassengerRepository,
	ticketRepository *repository.TicketRepository,
	validation *validation.Validation,
	log *logrus.Logger,
) *TicketService {
	return &TicketService{
		uow:                 uow,
		passengerRepository: passengerRepository,
		ticketRepository:    ticketRepository,
		validation:          validation,
		log:                 log,
		tracer:              otel.Tracer("TicketService"),
		now:                 time.Now,
	}
}

// Create purchases ticket in one transaction. A ticket without a passenger
// reference gets its embedded passenger created first; a referenced passenger
// must exist. The purchase time is stamped on the ticket and recorded as the
// passenger's last purchase. On failure nothing is persisted and ticket is
// left as it was passed in.
func (s *TicketService) Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	spanCtx, span := s.tracer.Start(ctx, "TicketService.Create")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	if err := s.validate(ticket); err != nil {
		logger.WithError(err).Warn("invalid ticket")
		return nil, err
	}

	snapshot := *ticket
	var passengerSnapshot *model.Passenger
	if ticket.Passenger != nil {
		p := *ticket.Passenger
		passengerSnapshot = &p
	}

	created, err := repository.RunTransactional(spanCtx, s.uow, func(ctx context.Context) (*model.Ticket, error) {
		passenger, err := s.resolvePassenger(ctx, ticket)
		if err != nil {
			return nil, err
		}
		ticket.SetPassenger(passenger)
		ticket.PurchaseDate = s.now().UTC().Truncate(time.Microsecond)

		if _, err := s.ticketRepository.Create(ctx, ticket); err != nil {
			return nil, err
		}

		purchased := ticket.PurchaseDate
		passenger.LastPurchase = &purchased
		if _, err := s.passengerRepository.Update(ctx, passenger); err != nil {
			return nil, err
		}
		return ticket, nil
	})
	if err != nil {
		*ticket = snapshot
		if passengerSnapshot != nil {
			*ticket.Passenger = *passengerSnapshot
		}
		logger.WithError(err).Error("failed to purchase ticket")
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"ticket_id":    created.ID,
		"passenger_id": created.PassengerID,
	}).Debug("ticket purchased")
	return created, nil
}

func (s *TicketService) resolvePassenger(ctx context.Context, ticket *model.Ticket) (*model.Passenger, error) {
	id, ok := ticket.ResolvePassengerID()
	if !ok {
		return s.passengerRepository.Create(ctx, ticket.Passenger)
	}

	passenger, err := s.passengerRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if passenger == nil {
		return nil, fmt.Errorf("%w: id %d", apperrors.ErrPassengerNotFound, id)
	}
	return passenger, nil
}

func (s *TicketService) validate(ticket *model.Ticket) error {
	if err := s.validation.Validate(ticket); err != nil {
		return err
	}
	if _, ok := ticket.ResolvePassengerID(); ok {
		return nil
	}
	if ticket.Passenger == nil {
		return &validation.ValidationError{
			Message: "Validation failed",
			Errors:  map[string][]string{"passenger": {"passenger is required"}},
		}
	}
	return s.validation.Validate(ticket.Passenger)
}
