package models

import "gorm.io/gorm"

type Gift struct {
	gorm.Model

	Name        string `gorm:"size:80;not null"`
	Picture     string `gorm:"size:250"`
	Description string `gorm:"size:140"`
	Open        bool   `gorm:"not null;default:true"` // false once a claim is accepted
	CreatorID   uint   `gorm:"not null;index"`
	CategoryID  *uint  `gorm:"index"`

	// Relationships
	Creator  User      `gorm:"foreignKey:CreatorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Claims   []Claim   `gorm:"foreignKey:GiftID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
