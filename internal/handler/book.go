package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/validation"
	"gorm.io/gorm"
)

type BookHandler struct {
	repo repository.BookRepository
}

func NewBookHandler(repo repository.BookRepository) *BookHandler {
	return &BookHandler{repo: repo}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBookByID)
		books.POST("", h.CreateBook)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}
}

// ListBooks godoc
// @Summary      List books
// @Description  Get all books ordered by id
// @Tags         books
// @Produce      json
// @Success      200  {array}   Book
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.repo.List(c.Request.Context())
	if err != nil {
		writeStoreError(c, err, http.StatusInternalServerError,
			"BOOK_LIST_FAILED",
			"failed to fetch books",
		)
		return
	}

	res := make([]Book, 0, len(books))
	for _, b := range books {
		res = append(res, toBookResponse(b))
	}

	c.JSON(http.StatusOK, res)
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Tags         books
// @Produce      json
// @Param        id   path      int                       true  "Book ID"
// @Success      200  {object}  Book
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		bookNotFound(c)
		return
	}

	book, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			bookNotFound(c)
			return
		}

		writeStoreError(c, err, http.StatusInternalServerError,
			"BOOK_FETCH_FAILED",
			"failed to fetch book",
		)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*book))
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Create a book for an existing author
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      BookRequest               true  "Book to create"
// @Success      201      {object}  Book
// @Failure      400      {object}  validation.ErrorResponse  "Validation error or unknown author"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req BookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book, err := toBookModel(req)
	if err != nil {
		writeFieldError(c, http.StatusBadRequest, validation.CodeValidationFailed, "validation failed",
			validation.FieldError{Field: "datePublished", Rule: "date", Message: err.Error()})
		return
	}

	ctx := c.Request.Context()

	if err := h.repo.Create(ctx, &book); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			unknownAuthor(c)
			return
		}

		writeStoreError(c, err, http.StatusInternalServerError,
			"BOOK_CREATE_FAILED",
			"failed to create book",
		)
		return
	}

	c.JSON(http.StatusCreated, toBookResponse(book))
}

// UpdateBook godoc
// @Summary      Replace a book
// @Description  Replace all fields of an existing book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Book ID"
// @Param        payload  body      BookRequest               true  "New book fields"
// @Success      200      {object}  Book
// @Failure      400      {object}  validation.ErrorResponse  "Validation error or unknown author"
// @Failure      404      {object}  validation.ErrorResponse  "Book not found"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	var req BookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	id, ok := parseID(c)
	if !ok {
		bookNotFound(c)
		return
	}

	book, err := toBookModel(req)
	if err != nil {
		writeFieldError(c, http.StatusBadRequest, validation.CodeValidationFailed, "validation failed",
			validation.FieldError{Field: "datePublished", Rule: "date", Message: err.Error()})
		return
	}
	book.ID = id

	ctx := c.Request.Context()

	if err := h.repo.Update(ctx, &book); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			bookNotFound(c)
		case errors.Is(err, repository.ErrForeignKeyViolation):
			unknownAuthor(c)
		default:
			writeStoreError(c, err, http.StatusInternalServerError,
				"BOOK_UPDATE_FAILED",
				"failed to update book",
			)
		}
		return
	}

	updated, err := h.repo.FindByID(ctx, id)
	if err != nil {
		writeStoreError(c, err, http.StatusInternalServerError,
			"BOOK_FETCH_FAILED",
			"failed to fetch updated book",
		)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*updated))
}

// DeleteBook godoc
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Param        id   path      int                       true  "Book ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		bookNotFound(c)
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			bookNotFound(c)
			return
		}

		writeStoreError(c, err, http.StatusInternalServerError,
			"BOOK_DELETE_FAILED",
			"failed to delete book",
		)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Book has been successfully deleted"})
}

func bookNotFound(c *gin.Context) {
	writeError(c, http.StatusNotFound,
		"BOOK_NOT_FOUND",
		"Book could not be found",
	)
}

func unknownAuthor(c *gin.Context) {
	writeFieldError(c, http.StatusBadRequest,
		"AUTHOR_NOT_FOUND",
		"author does not exist",
		validation.FieldError{
			Field:   "authorId",
			Rule:    "exists",
			Message: "authorId must reference an existing author",
		},
	)
}
