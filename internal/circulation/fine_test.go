package circulation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFine_LateDaysAtFlatRate(t *testing.T) {
	planned := date("2024-01-01")
	for n := 1; n <= 30; n++ {
		t.Run(fmt.Sprintf("%d days late", n), func(t *testing.T) {
			actual := planned.AddDate(0, 0, n)
			assert.Equal(t, n*DailyFineRate, Fine(planned, actual))
		})
	}
}

func TestFine_OnTimeOrEarlyIsZero(t *testing.T) {
	planned := date("2024-01-10")

	assert.Zero(t, Fine(planned, planned), "same day")
	assert.Zero(t, Fine(planned, date("2024-01-05")), "early return")
	assert.Zero(t, Fine(planned, date("2023-12-01")), "well before planned")
}

func TestEstimateFine(t *testing.T) {
	tests := []struct {
		name     string
		planned  string
		actual   string
		previous int
		want     int
	}{
		{
			name:    "ten days late",
			planned: "2024-01-01",
			actual:  "2024-01-11",
			want:    100,
		},
		{
			name:    "on time",
			planned: "2024-01-11",
			actual:  "2024-01-11",
			want:    0,
		},
		{
			name:     "unparsable actual keeps previous",
			planned:  "2024-01-01",
			actual:   "2024-01-",
			previous: 70,
			want:     70,
		},
		{
			name:     "unparsable planned keeps previous",
			planned:  "",
			actual:   "2024-01-11",
			previous: 30,
			want:     30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateFine(tt.planned, tt.actual, tt.previous)
			require.Equal(t, tt.want, got)
		})
	}
}
