package models

import "gorm.io/gorm"

type Claim struct {
	gorm.Model

	Message   string `gorm:"size:140;not null"`
	Accepted  bool   `gorm:"not null;default:false"`
	GiftID    uint   `gorm:"not null;index"`
	CreatorID uint   `gorm:"not null;index"`

	// Relationships
	Gift    Gift `gorm:"foreignKey:GiftID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Creator User `gorm:"foreignKey:CreatorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
