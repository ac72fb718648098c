package handler

// AuthorRequest is the body accepted by both create and update; update
// replaces both names. Both must be present but may be empty.
type AuthorRequest struct {
	FirstName *string `json:"firstName" binding:"required,max=255" example:"Jane"`
	LastName  *string `json:"lastName" binding:"required,max=255" example:"Austen"`
}

type Author struct {
	ID        uint   `json:"id" example:"1"`
	FirstName string `json:"firstName" example:"Jane"`
	LastName  string `json:"lastName" example:"Austen"`
}
