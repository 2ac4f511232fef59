package services

import (
	"testing"

	"hostelhub-server/models"
)

func TestCanTransitionComplaint(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.ComplaintPending, models.ComplaintInProgress, true},
		{models.ComplaintPending, models.ComplaintRejected, true},
		{models.ComplaintPending, models.ComplaintResolved, false},
		{models.ComplaintInProgress, models.ComplaintResolved, true},
		{models.ComplaintInProgress, models.ComplaintRejected, true},
		{models.ComplaintInProgress, models.ComplaintPending, false},
		{models.ComplaintResolved, models.ComplaintInProgress, false},
		{models.ComplaintRejected, models.ComplaintPending, false},
	}
	for _, c := range cases {
		if got := CanTransitionComplaint(c.from, c.to); got != c.want {
			t.Errorf("CanTransitionComplaint(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestCanTransitionBooking(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.BookingPending, models.BookingConfirmed, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingPending, models.BookingCheckedIn, false},
		{models.BookingConfirmed, models.BookingCheckedIn, true},
		{models.BookingConfirmed, models.BookingCancelled, true},
		{models.BookingConfirmed, models.BookingCheckedOut, false},
		{models.BookingCheckedIn, models.BookingCheckedOut, true},
		{models.BookingCheckedIn, models.BookingCancelled, false},
		{models.BookingCheckedOut, models.BookingCheckedIn, false},
		{models.BookingCancelled, models.BookingConfirmed, false},
	}
	for _, c := range cases {
		if got := CanTransitionBooking(c.from, c.to); got != c.want {
			t.Errorf("CanTransitionBooking(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
