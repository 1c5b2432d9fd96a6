package models

import (
	"time"
)

type Product struct {
	ID            string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title         string  `gorm:"type:varchar(200);not null" json:"title"`
	Description   string  `gorm:"type:text" json:"description,omitempty"`
	Price         float64 `gorm:"type:decimal(10,2)" json:"price"`
	Category      string  `gorm:"type:varchar(60);index" json:"category,omitempty"`
	Subject       string  `gorm:"type:varchar(60);index" json:"subject,omitempty"`
	Series        string  `gorm:"type:varchar(60);index" json:"series,omitempty"`
	Grade         string  `gorm:"type:varchar(30)" json:"grade,omitempty"`
	Image         string  `gorm:"type:varchar(500)" json:"image,omitempty"`
	NewCollection bool    `gorm:"default:false" json:"newCollection"`
	Featured      bool    `gorm:"default:false" json:"featured"`
	InStock       bool    `gorm:"default:true" json:"inStock"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}
