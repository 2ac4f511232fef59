package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Salary statuses
const (
	SalaryPending = "PENDING"
	SalaryPaid    = "PAID"
)

type Salary struct {
	gorm.Model
	StaffProfileID uint `json:"staffProfileID" gorm:"index;not null"`
	HostelID       uint `json:"hostelID" gorm:"index;not null"`

	Month     string          `json:"month" gorm:"size:16"`
	Year      int             `json:"year"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Bonus     decimal.Decimal `json:"bonus" gorm:"type:decimal(12,2);default:0"`
	Deduction decimal.Decimal `json:"deduction" gorm:"type:decimal(12,2);default:0"`
	Status    string          `json:"status" gorm:"size:16;default:PENDING;index"`
	PaidAt    *time.Time      `json:"paidAt"`
	PaidByID  *uint           `json:"paidByID"`

	StaffProfile *StaffProfile `json:"staffProfile,omitempty" gorm:"foreignKey:StaffProfileID"`
}
