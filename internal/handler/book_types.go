package handler

import "github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"

// BookRequest is the body accepted by both create and update. Pointers
// distinguish a missing field from its zero value, so isFiction=false and a
// missing isFiction are told apart, as are title="" and a missing title.
type BookRequest struct {
	Title         *string `json:"title" binding:"required,max=255" example:"Emma"`
	AuthorID      *uint   `json:"authorId" binding:"required,gt=0" example:"1"`
	DatePublished string  `json:"datePublished" binding:"required,date" example:"1815-12-23"`
	IsFiction     *bool   `json:"isFiction" binding:"required" example:"true"`
}

type Book struct {
	ID            uint       `json:"id" example:"1"`
	Title         string     `json:"title" example:"Emma"`
	AuthorID      uint       `json:"authorId" example:"1"`
	DatePublished model.Date `json:"datePublished" swaggertype:"string" example:"1815-12-23"`
	IsFiction     bool       `json:"isFiction" example:"true"`
}
