package models

import (
	"time"

	"gorm.io/gorm"
)

// Complaint statuses. RESOLVED and REJECTED are terminal.
const (
	ComplaintPending    = "PENDING"
	ComplaintInProgress = "IN_PROGRESS"
	ComplaintResolved   = "RESOLVED"
	ComplaintRejected   = "REJECTED"
)

// Complaint priorities
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

type Complaint struct {
	gorm.Model
	UserID   uint  `json:"userID" gorm:"index;not null"`
	HostelID uint  `json:"hostelID" gorm:"index;not null"`
	RoomID   *uint `json:"roomID" gorm:"index"`

	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category" gorm:"size:32"` // electricity, plumbing, food, wifi, other
	Status      string `json:"status" gorm:"size:16;default:PENDING;index"`
	Priority    string `json:"priority" gorm:"size:16;default:MEDIUM"`

	AssignedToID    *uint      `json:"assignedToID" gorm:"index"`
	ResolutionNotes string     `json:"resolutionNotes" gorm:"type:text"`
	ResolvedAt      *time.Time `json:"resolvedAt"`

	User       *User              `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Room       *Room              `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	AssignedTo *User              `json:"assignedTo,omitempty" gorm:"foreignKey:AssignedToID"`
	Comments   []ComplaintComment `json:"comments,omitempty" gorm:"foreignKey:ComplaintID;references:ID"`
}

type ComplaintComment struct {
	gorm.Model
	ComplaintID uint   `json:"complaintID" gorm:"index;not null"`
	UserID      uint   `json:"userID" gorm:"index;not null"`
	Body        string `json:"body" gorm:"type:text"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
