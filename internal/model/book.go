package model

import "time"

// Book references its Author but does not own it. The foreign key is
// restrictive on delete, so an author with books cannot be removed.
type Book struct {
	ID            uint      `gorm:"primaryKey"`
	Title         string    `gorm:"not null;size:255"`
	AuthorID      uint      `gorm:"not null;index"`
	Author        *Author   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	DatePublished time.Time `gorm:"type:date;not null"`
	IsFiction     bool      `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
