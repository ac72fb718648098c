package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

// parseID reads the :id path segment. Anything that is not a positive
// integer cannot name a stored record, so callers answer 404 without
// querying the store.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func toAuthorResponse(a model.Author) Author {
	return Author{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}

func toBookResponse(b model.Book) Book {
	return Book{
		ID:            b.ID,
		Title:         b.Title,
		AuthorID:      b.AuthorID,
		DatePublished: model.Date{Time: model.NormalizeDate(b.DatePublished)},
		IsFiction:     b.IsFiction,
	}
}

// toBookModel assumes req has already passed validation.
func toBookModel(req BookRequest) (model.Book, error) {
	published, err := model.ParseDate(req.DatePublished)
	if err != nil {
		return model.Book{}, err
	}

	return model.Book{
		Title:         *req.Title,
		AuthorID:      *req.AuthorID,
		DatePublished: published,
		IsFiction:     *req.IsFiction,
	}, nil
}
