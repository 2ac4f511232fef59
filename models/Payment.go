package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment types
const (
	PaymentTypeRent        = "RENT"
	PaymentTypeMonthlyRent = "MONTHLY_RENT"
	PaymentTypeDeposit     = "DEPOSIT"
	PaymentTypeOther       = "OTHER"
)

// Payment methods
const (
	MethodCash         = "CASH"
	MethodBankTransfer = "BANK_TRANSFER"
	MethodCheque       = "CHEQUE"
	MethodOnline       = "ONLINE"
	MethodCard         = "CARD"
)

// Payment statuses. PAID and REJECTED are terminal.
const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentPartial  = "PARTIAL"
	PaymentRejected = "REJECTED"
	PaymentOverdue  = "OVERDUE"
	PaymentFailed   = "FAILED"
	PaymentRefunded = "REFUNDED"
)

type Payment struct {
	gorm.Model
	BookingID uint `json:"bookingID" gorm:"index;not null"`
	UserID    uint `json:"userID" gorm:"index;not null"`
	HostelID  uint `json:"hostelID" gorm:"index;not null"`

	Amount   decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Currency string          `json:"currency" gorm:"size:8;default:PKR"`
	Type     string          `json:"type" gorm:"size:16;index"`
	Method   string          `json:"method" gorm:"size:16"`
	Status   string          `json:"status" gorm:"size:16;default:PENDING;index"`
	PaidAt   *time.Time      `json:"paidAt"`

	// Rent period tag; empty for non-rent payments.
	Month string `json:"month" gorm:"size:16"`
	Year  int    `json:"year"`

	ReceiptNumber string `json:"receiptNumber" gorm:"size:40;index"`
	ReceiptURL    string `json:"receiptURL"`
	Notes         string `json:"notes"`

	ReviewedByID    *uint      `json:"reviewedByID"`
	ReviewedAt      *time.Time `json:"reviewedAt"`
	RejectionReason string     `json:"rejectionReason"`

	Booking    *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	User       *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ReviewedBy *User    `json:"reviewedBy,omitempty" gorm:"foreignKey:ReviewedByID"`
}

// IsRentType reports whether the payment counts against a monthly rent period.
func (p *Payment) IsRentType() bool {
	return p.Type == PaymentTypeRent || p.Type == PaymentTypeMonthlyRent
}
