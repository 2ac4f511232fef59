package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Maintenance statuses
const (
	MaintenanceOpen       = "OPEN"
	MaintenanceInProgress = "IN_PROGRESS"
	MaintenanceDone       = "DONE"
	MaintenanceCancelled  = "CANCELLED"
)

type Maintenance struct {
	gorm.Model
	RoomID       uint  `json:"roomID" gorm:"index;not null"`
	HostelID     uint  `json:"hostelID" gorm:"index;not null"`
	ReportedByID uint  `json:"reportedByID" gorm:"index"`
	AssignedToID *uint `json:"assignedToID" gorm:"index"`

	Title       string          `json:"title"`
	Description string          `json:"description" gorm:"type:text"`
	Status      string          `json:"status" gorm:"size:16;default:OPEN;index"`
	Cost        decimal.Decimal `json:"cost" gorm:"type:decimal(12,2);default:0"`
	CompletedAt *time.Time      `json:"completedAt"`

	Room       *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	ReportedBy *User `json:"reportedBy,omitempty" gorm:"foreignKey:ReportedByID"`
	AssignedTo *User `json:"assignedTo,omitempty" gorm:"foreignKey:AssignedToID"`
}
