package seeder

import (
	"context"
	"time"

	app "go-ticket-store/internal"
	"go-ticket-store/internal/model"
	"go-ticket-store/internal/utils/logutil"

	"github.com/sirupsen/logrus"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func flight(from, to string, departure time.Time, duration time.Duration) *model.Ticket {
	return &model.Ticket{
		DepartureAirport: from,
		ArrivalAirport:   to,
		DepartureDate:    departure,
		ArrivalDate:      departure.Add(duration),
	}
}

// Seed replaces every passenger and ticket with demo data. It runs as one
// transaction, so a failure leaves the previous data in place.
func Seed(ctx context.Context, boot *app.BootstrapConfig, log *logrus.Logger) error {
	passengers := []*model.Passenger{
		{FirstName: "Ivan", LastName: "Ivanov", Male: true, BirthDate: date(1990, time.January, 1)},
		{FirstName: "Anna", LastName: "Petrova", Male: false, BirthDate: date(1985, time.March, 14)},
		{FirstName: "Oleg", LastName: "Sidorov", Male: true, BirthDate: date(2001, time.October, 30)},
	}

	err := boot.UnitOfWork.Do(ctx, func(ctx context.Context) error {
		// Cleanup existing records in dependency order
		if err := boot.TicketRepository.DeleteAll(ctx); err != nil {
			return err
		}
		if err := boot.PassengerRepository.DeleteAll(ctx); err != nil {
			return err
		}

		if err := boot.PassengerRepository.CreateMany(ctx, passengers); err != nil {
			return err
		}
		logutil.OperationEntry(log, ctx, "seed passengers").WithField("count", len(passengers)).Info("Passengers seeded")

		morning := time.Date(2025, time.June, 1, 8, 30, 0, 0, time.UTC)
		tickets := []*model.Ticket{
			flight("SVO", "LED", morning, 90*time.Minute),
			flight("LED", "SVO", morning.Add(72*time.Hour), 90*time.Minute),
			flight("SVO", "AER", morning.Add(24*time.Hour), 2*time.Hour+40*time.Minute),
		}
		tickets[0].PassengerID = passengers[0].ID
		tickets[1].PassengerID = passengers[0].ID
		tickets[2].PassengerID = passengers[1].ID

		walkIn := flight("AER", "KZN", morning.Add(48*time.Hour), 3*time.Hour)
		walkIn.Passenger = &model.Passenger{FirstName: "Maria", LastName: "Kuznetsova", BirthDate: date(1978, time.July, 5)}
		tickets = append(tickets, walkIn)

		for _, ticket := range tickets {
			if _, err := boot.TicketService.Create(ctx, ticket); err != nil {
				return err
			}
		}
		logutil.OperationEntry(log, ctx, "seed tickets").WithField("count", len(tickets)).Info("Tickets seeded")
		return nil
	})
	if err != nil {
		logutil.Error(log, "Failed to seed database", err)
		return err
	}
	return nil
}
