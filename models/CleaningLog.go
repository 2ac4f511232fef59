package models

import (
	"time"

	"gorm.io/gorm"
)

// Service log statuses shared by cleaning and laundry entries.
const (
	LogScheduled = "SCHEDULED"
	LogDone      = "DONE"
	LogSkipped   = "SKIPPED"
)

type CleaningLog struct {
	gorm.Model
	RoomID        uint       `json:"roomID" gorm:"index;not null"`
	HostelID      uint       `json:"hostelID" gorm:"index;not null"`
	StaffID       *uint      `json:"staffID" gorm:"index"`
	Status        string     `json:"status" gorm:"size:16;default:SCHEDULED;index"`
	ScheduledFor  time.Time  `json:"scheduledFor"`
	CompletedAt   *time.Time `json:"completedAt"`
	Notes         string     `json:"notes"`
	AutoGenerated bool       `json:"autoGenerated"`

	Room  *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Staff *User `json:"staff,omitempty" gorm:"foreignKey:StaffID"`
}
