package model

import "time"

type Author struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"not null;size:255"`
	LastName  string `gorm:"not null;size:255;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
