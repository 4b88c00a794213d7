package booking

import (
	"testing"
	"time"

	"github.com/RentalDrive/RentalDrive/internal/vehicle"
)

func TestCanBook(t *testing.T) {
	cases := []struct {
		av   vehicle.Availability
		want bool
	}{
		{vehicle.AvailabilityAvailable, true},
		{vehicle.AvailabilityMaintenance, true},
		{vehicle.AvailabilityUnavailable, false},
		{vehicle.AvailabilityCompleted, false},
	}
	for _, tc := range cases {
		if got := CanBook(tc.av); got != tc.want {
			t.Errorf("CanBook(%s) = %v, want %v", tc.av, got, tc.want)
		}
	}
}

func TestAvailabilityAfterCreate(t *testing.T) {
	if got := AvailabilityAfterCreate(vehicle.AvailabilityAvailable); got != vehicle.AvailabilityUnavailable {
		t.Errorf("available should become unavailable, got %s", got)
	}
	if got := AvailabilityAfterCreate(vehicle.AvailabilityMaintenance); got != vehicle.AvailabilityMaintenance {
		t.Errorf("maintenance must stay unchanged, got %s", got)
	}
}

func TestRentalDays(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want int
	}{
		{"five full days", start.AddDate(0, 0, 5), 5},
		{"partial day rounds up", start.Add(36 * time.Hour), 2},
		{"under a day counts as one", start.Add(2 * time.Hour), 1},
		{"end equals start", start, 0},
		{"end before start", start.Add(-24 * time.Hour), 0},
	}
	for _, tc := range cases {
		if got := RentalDays(start, tc.end); got != tc.want {
			t.Errorf("%s: RentalDays = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestApplySurcharge(t *testing.T) {
	cases := []struct {
		name  string
		price float64
		days  int
		want  float64
	}{
		{"daily rate above threshold", 600, 5, 630},
		{"daily rate below threshold", 200, 5, 200},
		{"daily rate exactly at threshold", 250, 5, 250},
		{"zero days leaves price untouched", 600, 0, 600},
	}
	for _, tc := range cases {
		if got := ApplySurcharge(tc.price, tc.days); got != tc.want {
			t.Errorf("%s: ApplySurcharge(%v, %d) = %v, want %v", tc.name, tc.price, tc.days, got, tc.want)
		}
	}
}
