package services

import (
	"errors"
	"time"

	"hostelhub-server/models"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// LedgerTotals holds the reconciliation figures for one booking's payment
// history. Amounts are in the booking's currency (PKR).
type LedgerTotals struct {
	TotalLiability decimal.Decimal `json:"totalLiability"`
	SettledFunds   decimal.Decimal `json:"settledFunds"`
	Residual       decimal.Decimal `json:"residual"`
	CompletionRate int             `json:"completionRate"`
}

// ComputeLedgerTotals derives the aggregate ledger figures for a booking from
// its payment list. Only PAID payments count as settled. Residual is clamped
// at zero; the completion rate is a rounded percentage and deliberately not
// capped at 100 so overpaid bookings are visible to the dashboard.
func ComputeLedgerTotals(booking *models.Booking) LedgerTotals {
	totalLiability := booking.TotalAmount.Add(booking.SecurityDeposit)

	settled := decimal.Zero
	for _, payment := range booking.Payments {
		if payment.Status == models.PaymentPaid {
			settled = settled.Add(payment.Amount)
		}
	}

	residual := totalLiability.Sub(settled)
	if residual.IsNegative() {
		residual = decimal.Zero
	}

	rate := 0
	if totalLiability.IsPositive() {
		rate = int(settled.Div(totalLiability).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
	}

	return LedgerTotals{
		TotalLiability: totalLiability,
		SettledFunds:   settled,
		Residual:       residual,
		CompletionRate: rate,
	}
}

// RentCandidate describes a payment about to be recorded, for duplicate
// checking before it is committed.
type RentCandidate struct {
	Type  string
	Month string
	Year  int
}

// duplicate check ignores payments in these states
var inactivePaymentStatuses = []string{
	models.PaymentRejected,
	models.PaymentFailed,
	models.PaymentRefunded,
}

// DetectDuplicateRentEntry returns the first active rent payment already
// covering the candidate's (month, year) period, or nil. The check is
// advisory: callers may still commit with an explicit override. Payment
// method is irrelevant; only type, period and status matter.
func DetectDuplicateRentEntry(existing []models.Payment, candidate RentCandidate) *models.Payment {
	if candidate.Type != models.PaymentTypeRent && candidate.Type != models.PaymentTypeMonthlyRent {
		return nil
	}
	for i := range existing {
		p := &existing[i]
		if !p.IsRentType() {
			continue
		}
		if p.Month != candidate.Month || p.Year != candidate.Year {
			continue
		}
		if slices.Contains(inactivePaymentStatuses, p.Status) {
			continue
		}
		return p
	}
	return nil
}

// CanTransitionPayment reports whether a payment status change is legal.
// PENDING, PARTIAL and OVERDUE may move to PAID or REJECTED; PAID and
// REJECTED are terminal.
func CanTransitionPayment(from, to string) bool {
	switch from {
	case models.PaymentPending, models.PaymentPartial, models.PaymentOverdue:
		return to == models.PaymentPaid || to == models.PaymentRejected
	}
	return false
}

var ErrNoApprovablePayments = errors.New("no approvable payments in batch")

// dedupeIDs preserves first-seen order; a batch listing the same payment
// twice is one approval, not a missing row.
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// BulkApprovePayments transitions a batch of payments to PAID in a single
// transaction: either every eligible row is approved or none are. Rows
// already in a terminal state are not eligible and make the whole batch
// fail, so callers always know exactly what was approved.
func BulkApprovePayments(db *gorm.DB, paymentIDs []uint, approverID uint) (int64, error) {
	paymentIDs = dedupeIDs(paymentIDs)
	if len(paymentIDs) == 0 {
		return 0, ErrNoApprovablePayments
	}

	var approved int64
	err := db.Transaction(func(tx *gorm.DB) error {
		var payments []models.Payment
		if err := tx.Where("id IN ?", paymentIDs).Find(&payments).Error; err != nil {
			return err
		}
		if len(payments) != len(paymentIDs) {
			return errors.New("one or more payments not found")
		}
		for _, p := range payments {
			if !CanTransitionPayment(p.Status, models.PaymentPaid) {
				return errors.New("payment " + p.ReceiptNumber + " is not pending approval")
			}
		}

		now := time.Now()
		res := tx.Model(&models.Payment{}).
			Where("id IN ?", paymentIDs).
			Updates(map[string]interface{}{
				"status":         models.PaymentPaid,
				"paid_at":        now,
				"reviewed_by_id": approverID,
				"reviewed_at":    now,
			})
		if res.Error != nil {
			return res.Error
		}
		approved = res.RowsAffected

		// One in-app notification per payer
		for _, p := range payments {
			notification := models.Notification{
				UserID:  p.UserID,
				Type:    "payment_status",
				Title:   "Payment Approved",
				Message: "Your payment of " + p.Amount.StringFixed(2) + " " + p.Currency + " has been approved.",
				RefType: "payment",
				RefID:   p.ID,
			}
			if err := tx.Create(&notification).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return approved, nil
}
