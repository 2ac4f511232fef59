package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Expense struct {
	gorm.Model
	HostelID    uint            `json:"hostelID" gorm:"index;not null"`
	RecordedBy  uint            `json:"recordedBy" gorm:"index"`
	Category    string          `json:"category" gorm:"size:32;index"` // utilities, groceries, repairs, salaries, other
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Description string          `json:"description"`
	IncurredAt  time.Time       `json:"incurredAt" gorm:"index"`
}
