package model

import "time"

// Category groups products, optionally under a parent category.
type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string `json:"description" gorm:"size:500"`
	ParentID    *uint  `json:"parent_id,omitempty"`

	Subcategories []Category `json:"subcategories,omitempty" gorm:"foreignKey:ParentID"`
	Products      []Product  `json:"-" gorm:"foreignKey:CategoryID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
