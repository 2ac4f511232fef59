package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StaffProfile struct {
	gorm.Model
	UserID   uint `json:"userID" gorm:"uniqueIndex;not null"`
	HostelID uint `json:"hostelID" gorm:"index;not null"`

	Designation   string          `json:"designation" gorm:"size:40"` // warden, cleaner, cook, guard, accountant
	Shift         string          `json:"shift" gorm:"size:16"`       // morning, evening, night
	MonthlySalary decimal.Decimal `json:"monthlySalary" gorm:"type:decimal(12,2);default:0"`
	JoinedAt      time.Time       `json:"joinedAt"`
	LeftAt        *time.Time      `json:"leftAt"`

	User     *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Salaries []Salary `json:"salaries,omitempty" gorm:"foreignKey:StaffProfileID;references:ID"`
}
