package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Name     string `gorm:"size:80;not null"`
	Email    string `gorm:"size:80;uniqueIndex;not null"`
	Address  string `gorm:"size:200"`
	Picture  string `gorm:"size:250"`
	OAuthID  string `gorm:"size:80;index"`
	Provider string `gorm:"size:20"`

	// Relationships
	Gifts  []Gift  `gorm:"foreignKey:CreatorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Claims []Claim `gorm:"foreignKey:CreatorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
