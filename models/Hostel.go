package models

import "gorm.io/gorm"

type Hostel struct {
	gorm.Model
	Name         string `json:"name"`
	Address      string `json:"address"`
	City         string `json:"city"`
	ContactPhone string `json:"contactPhone"`
	ContactEmail string `json:"contactEmail"`
	OwnerID      uint   `json:"ownerID" gorm:"index"`
	TotalFloors  int    `json:"totalFloors"`
	Active       *bool  `json:"active" gorm:"default:true"`

	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:HostelID;references:ID"`
	Owner *User  `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
