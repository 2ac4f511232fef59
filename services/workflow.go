package services

import (
	"hostelhub-server/models"
)

// CanTransitionComplaint reports whether a complaint status change is legal:
// PENDING -> IN_PROGRESS -> RESOLVED, with REJECTED reachable from either
// non-terminal state. RESOLVED and REJECTED are terminal.
func CanTransitionComplaint(from, to string) bool {
	switch from {
	case models.ComplaintPending:
		return to == models.ComplaintInProgress || to == models.ComplaintRejected
	case models.ComplaintInProgress:
		return to == models.ComplaintResolved || to == models.ComplaintRejected
	}
	return false
}

// CanTransitionBooking enforces the booking lifecycle: PENDING -> CONFIRMED
// -> CHECKED_IN -> CHECKED_OUT, with CANCELLED reachable until check-in.
func CanTransitionBooking(from, to string) bool {
	switch from {
	case models.BookingPending:
		return to == models.BookingConfirmed || to == models.BookingCancelled
	case models.BookingConfirmed:
		return to == models.BookingCheckedIn || to == models.BookingCancelled
	case models.BookingCheckedIn:
		return to == models.BookingCheckedOut
	}
	return false
}
