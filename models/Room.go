package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Room statuses
const (
	RoomAvailable   = "AVAILABLE"
	RoomOccupied    = "OCCUPIED"
	RoomMaintenance = "MAINTENANCE"
	RoomCleaning    = "CLEANING"
)

type Room struct {
	gorm.Model
	HostelID uint   `json:"hostelID" gorm:"index;not null"`
	Number   string `json:"number" gorm:"size:16"`
	Floor    int    `json:"floor"`
	Type     string `json:"type" gorm:"size:32"` // single, double, triple, dorm
	Capacity int    `json:"capacity"`
	Status   string `json:"status" gorm:"size:16;default:AVAILABLE;index"`

	BasePrice    decimal.Decimal `json:"basePrice" gorm:"type:decimal(12,2);default:0"`
	PerNightRate decimal.Decimal `json:"perNightRate" gorm:"type:decimal(12,2);default:0"`
	MonthlyRent  decimal.Decimal `json:"monthlyRent" gorm:"type:decimal(12,2);default:0"`

	// Service-interval configuration; zero disables auto log generation.
	CleaningFrequencyHours int        `json:"cleaningFrequencyHours"`
	LaundryFrequencyHours  int        `json:"laundryFrequencyHours"`
	LastCleanedAt          *time.Time `json:"lastCleanedAt"`
	LastLaundryAt          *time.Time `json:"lastLaundryAt"`

	Hostel   *Hostel   `json:"hostel,omitempty" gorm:"foreignKey:HostelID"`
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:RoomID;references:ID"`
}
