package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Notice struct {
	gorm.Model
	HostelID    uint           `json:"hostelID" gorm:"index;not null"`
	CreatedByID uint           `json:"createdByID" gorm:"index"`
	Title       string         `json:"title"`
	Body        string         `json:"body" gorm:"type:text"`
	Audience    datatypes.JSON `json:"audience"` // roles the notice targets, e.g. ["guest","staff"]
	Pinned      bool           `json:"pinned"`
	PublishedAt *time.Time     `json:"publishedAt" gorm:"index"`
	ExpiresAt   *time.Time     `json:"expiresAt"`

	CreatedBy *User `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
}

// AudienceRoles decodes the JSON audience column; nil means everyone.
func (n *Notice) AudienceRoles() []string {
	if n.Audience == nil {
		return nil
	}
	var roles []string
	if err := json.Unmarshal(n.Audience, &roles); err != nil {
		return nil
	}
	return roles
}
