package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Booking statuses
const (
	BookingPending    = "PENDING"
	BookingConfirmed  = "CONFIRMED"
	BookingCheckedIn  = "CHECKED_IN"
	BookingCheckedOut = "CHECKED_OUT"
	BookingCancelled  = "CANCELLED"
)

type Booking struct {
	gorm.Model
	UserID   uint `json:"userID" gorm:"index;not null"`
	RoomID   uint `json:"roomID" gorm:"index;not null"`
	HostelID uint `json:"hostelID" gorm:"index;not null"`

	Status          string          `json:"status" gorm:"size:16;default:PENDING;index"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2);default:0"`
	SecurityDeposit decimal.Decimal `json:"securityDeposit" gorm:"type:decimal(12,2);default:0"`
	CheckIn         time.Time       `json:"checkIn"`
	CheckOut        *time.Time      `json:"checkOut"`
	Note            string          `json:"note"`

	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Room     *Room     `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Hostel   *Hostel   `json:"hostel,omitempty" gorm:"foreignKey:HostelID"`
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:BookingID;references:ID"`
}
