package validation

import (
	"strings"
	"testing"
	"time"

	"go-ticket-store/internal/model"

	"github.com/stretchr/testify/require"
)

// noJsonTag checks the fallback to the lowercase field name.
type noJsonTag struct {
	NoTag string `validate:"required"`
}

func TestValidate(t *testing.T) {
	v := NewValidation()
	departure := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		input      interface{}
		assertFunc func(t *testing.T, err error)
	}{
		{
			name: "Success",
			input: &model.Ticket{
				DepartureAirport: "SVO", ArrivalAirport: "LED",
				DepartureDate: departure, ArrivalDate: departure.Add(time.Hour),
			},
			assertFunc: func(t *testing.T, err error) { require.NoError(t, err) },
		},
		{
			name: "MultipleErrors_Messages",
			input: &model.Ticket{
				ArrivalAirport: strings.Repeat("A", 101),
				DepartureDate:  departure, ArrivalDate: departure.Add(-time.Hour),
			},
			assertFunc: func(t *testing.T, err error) {
				vErr, ok := err.(*ValidationError)
				require.True(t, ok)
				require.Equal(t, "Validation failed", vErr.Message)
				require.Contains(t, vErr.Errors["departure_airport"], "departure_airport is required")
				require.Contains(t, vErr.Errors["arrival_airport"], "arrival_airport must not exceed 100 characters")
				require.Contains(t, vErr.Errors["arrival_date"], "arrival_date must be after departure_date")
			},
		},
		{
			name:  "Passenger",
			input: &model.Passenger{FirstName: "Ivan"},
			assertFunc: func(t *testing.T, err error) {
				vErr, ok := err.(*ValidationError)
				require.True(t, ok)
				require.Equal(t, []string{"last_name is required"}, vErr.Errors["last_name"])
				require.Equal(t, []string{"birth_date is required"}, vErr.Errors["birth_date"])
				require.NotContains(t, vErr.Errors, "first_name")
			},
		},
		{
			name:  "FallbackToFieldName",
			input: &noJsonTag{},
			assertFunc: func(t *testing.T, err error) {
				vErr, ok := err.(*ValidationError)
				require.True(t, ok)
				require.Contains(t, vErr.Errors["notag"], "notag is required")
			},
		},
		{
			name:  "NotAStruct",
			input: "ticket",
			assertFunc: func(t *testing.T, err error) {
				require.Error(t, err)
				_, ok := err.(*ValidationError)
				require.False(t, ok)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.assertFunc(t, v.Validate(tc.input))
		})
	}
}
