package models

import "gorm.io/gorm"

// Category has no owner: any authenticated user may manage categories.
type Category struct {
	gorm.Model

	Name        string `gorm:"size:80;not null"`
	Description string `gorm:"size:140"`
	Picture     string `gorm:"size:250"`

	// Relationships
	Gifts []Gift `gorm:"foreignKey:CategoryID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
