package mapper

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-ticket-store/internal/utils/apperrors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var (
	passengerCols = []string{"id", "first_name", "last_name", "male", "birth_date", "last_purchase"}
	ticketCols    = []string{"id", "departure_airport", "arrival_airport", "departure_date", "arrival_date", "purchase_date", "passenger_id"}
)

// query runs a throwaway query against sqlmock so the mappers see real *sql.Rows.
func query(t *testing.T, rows *sqlmock.Rows) *sql.Rows {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT").WillReturnRows(rows)
	result, err := db.Query("SELECT")
	require.NoError(t, err)
	t.Cleanup(func() { _ = result.Close() })
	return result
}

func TestPassengerMapper_MapOne(t *testing.T) {
	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	purchase := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	m := NewPassengerMapper()

	cases := []struct {
		name   string
		rows   *sqlmock.Rows
		assert func(t *testing.T, rows *sql.Rows)
	}{
		{
			name: "Row",
			rows: sqlmock.NewRows(passengerCols).AddRow(int64(1), "Ivan", "Ivanov", true, birth, purchase),
			assert: func(t *testing.T, rows *sql.Rows) {
				p, err := m.MapOne(rows)
				require.NoError(t, err)
				require.Equal(t, int64(1), p.ID)
				require.Equal(t, "Ivan", p.FirstName)
				require.Equal(t, "Ivanov", p.LastName)
				require.True(t, p.Male)
				require.Equal(t, birth, p.BirthDate)
				require.NotNil(t, p.LastPurchase)
				require.Equal(t, purchase, *p.LastPurchase)
			},
		},
		{
			name: "NullLastPurchase",
			rows: sqlmock.NewRows(passengerCols).AddRow(int64(2), "Anna", "Petrova", false, birth, nil),
			assert: func(t *testing.T, rows *sql.Rows) {
				p, err := m.MapOne(rows)
				require.NoError(t, err)
				require.Nil(t, p.LastPurchase)
			},
		},
		{
			name: "NoRow",
			rows: sqlmock.NewRows(passengerCols),
			assert: func(t *testing.T, rows *sql.Rows) {
				p, err := m.MapOne(rows)
				require.NoError(t, err)
				require.Nil(t, p)
			},
		},
		{
			name: "OnlyFirstRowConsumed",
			rows: sqlmock.NewRows(passengerCols).
				AddRow(int64(1), "Ivan", "Ivanov", true, birth, nil).
				AddRow(int64(2), "Anna", "Petrova", false, birth, nil),
			assert: func(t *testing.T, rows *sql.Rows) {
				p, err := m.MapOne(rows)
				require.NoError(t, err)
				require.Equal(t, int64(1), p.ID)
				require.True(t, rows.Next())
			},
		},
		{
			name: "MalformedColumn",
			rows: sqlmock.NewRows(passengerCols).AddRow(int64(1), "Ivan", "Ivanov", true, "not-a-date", nil),
			assert: func(t *testing.T, rows *sql.Rows) {
				p, err := m.MapOne(rows)
				require.Nil(t, p)
				require.ErrorIs(t, err, apperrors.ErrMapping)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.assert(t, query(t, tc.rows))
		})
	}
}

func TestPassengerMapper_MapMany(t *testing.T) {
	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewPassengerMapper()

	cases := []struct {
		name    string
		rows    *sqlmock.Rows
		wantIDs []int64
		wantErr error
	}{
		{
			name: "KeepsCursorOrder",
			rows: sqlmock.NewRows(passengerCols).
				AddRow(int64(3), "C", "C", true, birth, nil).
				AddRow(int64(1), "A", "A", false, birth, nil).
				AddRow(int64(2), "B", "B", true, birth, nil),
			wantIDs: []int64{3, 1, 2},
		},
		{
			name:    "Empty",
			rows:    sqlmock.NewRows(passengerCols),
			wantIDs: []int64{},
		},
		{
			name: "MalformedRow",
			rows: sqlmock.NewRows(passengerCols).
				AddRow(int64(1), "A", "A", false, birth, nil).
				AddRow(int64(2), "B", "B", "maybe", birth, nil),
			wantErr: apperrors.ErrMapping,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.MapMany(query(t, tc.rows))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			ids := make([]int64, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			require.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestPassengerMapper_MapMany_CursorError(t *testing.T) {
	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	cursorErr := errors.New("connection lost mid-stream")
	rows := sqlmock.NewRows(passengerCols).
		AddRow(int64(1), "A", "A", false, birth, nil).
		AddRow(int64(2), "B", "B", true, birth, nil).
		RowError(1, cursorErr)

	got, err := NewPassengerMapper().MapMany(query(t, rows))
	require.Nil(t, got)
	require.ErrorIs(t, err, cursorErr)
	require.NotErrorIs(t, err, apperrors.ErrMapping)
}

func TestTicketMapper(t *testing.T) {
	dep := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	arr := dep.Add(3 * time.Hour)
	bought := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	m := NewTicketMapper()

	t.Run("MapOne", func(t *testing.T) {
		rows := sqlmock.NewRows(ticketCols).AddRow(int64(5), "SVO", "LED", dep, arr, bought, int64(1))
		ticket, err := m.MapOne(query(t, rows))
		require.NoError(t, err)
		require.Equal(t, int64(5), ticket.ID)
		require.Equal(t, "SVO", ticket.DepartureAirport)
		require.Equal(t, "LED", ticket.ArrivalAirport)
		require.Equal(t, dep, ticket.DepartureDate)
		require.Equal(t, arr, ticket.ArrivalDate)
		require.Equal(t, bought, ticket.PurchaseDate)
		require.Equal(t, int64(1), ticket.PassengerID)
		require.Nil(t, ticket.Passenger)
	})

	t.Run("MapOneNoRow", func(t *testing.T) {
		ticket, err := m.MapOne(query(t, sqlmock.NewRows(ticketCols)))
		require.NoError(t, err)
		require.Nil(t, ticket)
	})

	t.Run("MapMany", func(t *testing.T) {
		rows := sqlmock.NewRows(ticketCols).
			AddRow(int64(5), "SVO", "LED", dep, arr, bought, int64(1)).
			AddRow(int64(6), "LED", "SVO", arr, arr.Add(time.Hour), bought, int64(1))
		tickets, err := m.MapMany(query(t, rows))
		require.NoError(t, err)
		require.Len(t, tickets, 2)
		require.Equal(t, int64(6), tickets[1].ID)
	})

	t.Run("NullRequiredColumn", func(t *testing.T) {
		rows := sqlmock.NewRows(ticketCols).AddRow(int64(5), "SVO", "LED", dep, arr, nil, int64(1))
		_, err := m.MapOne(query(t, rows))
		require.ErrorIs(t, err, apperrors.ErrMapping)
	})
}
