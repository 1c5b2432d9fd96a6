package models

import (
	"time"
)

type Announcement struct {
	ID       string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title    string `gorm:"type:varchar(200);not null" json:"title"`
	Content  string `gorm:"type:text" json:"content,omitempty"`
	Image    string `gorm:"type:varchar(500)" json:"image,omitempty"`
	Featured bool   `gorm:"default:false;index" json:"featured"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Announcement) TableName() string {
	return "announcements"
}
