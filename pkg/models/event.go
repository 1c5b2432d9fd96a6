package models

import (
	"time"
)

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
)

// Event is a school event shown on the storefront (book fairs, workshops).
type Event struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title       string      `gorm:"type:varchar(200);not null" json:"title"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	Category    string      `gorm:"type:varchar(60);index" json:"category,omitempty"`
	Status      EventStatus `gorm:"type:varchar(20);default:'upcoming';index" json:"status"`
	Location    string      `gorm:"type:varchar(200)" json:"location,omitempty"`
	Image       string      `gorm:"type:varchar(500)" json:"image,omitempty"`
	StartsAt    *time.Time  `json:"startsAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Event) TableName() string {
	return "events"
}
