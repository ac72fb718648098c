package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/validation"
	"gorm.io/gorm"
)

type AuthorHandler struct {
	repo repository.AuthorRepository
}

func NewAuthorHandler(repo repository.AuthorRepository) *AuthorHandler {
	return &AuthorHandler{repo: repo}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	authors := r.Group("/authors")
	{
		authors.GET("", h.ListAuthors)
		authors.GET("/:id", h.GetAuthorByID)
		authors.POST("", h.CreateAuthor)
		authors.PUT("/:id", h.UpdateAuthor)
		authors.DELETE("/:id", h.DeleteAuthor)
	}
}

// ListAuthors godoc
// @Summary      List authors
// @Description  Get all authors ordered by id
// @Tags         authors
// @Produce      json
// @Success      200  {array}   Author
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, err := h.repo.List(c.Request.Context())
	if err != nil {
		writeStoreError(c, err, http.StatusInternalServerError,
			"AUTHOR_LIST_FAILED",
			"failed to list authors",
		)
		return
	}

	res := make([]Author, 0, len(authors))
	for _, a := range authors {
		res = append(res, toAuthorResponse(a))
	}

	c.JSON(http.StatusOK, res)
}

// GetAuthorByID godoc
// @Summary      Get author by ID
// @Tags         authors
// @Produce      json
// @Param        id   path      int                       true  "Author ID"
// @Success      200  {object}  Author
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetAuthorByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		authorNotFound(c)
		return
	}

	author, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			authorNotFound(c)
			return
		}

		writeStoreError(c, err, http.StatusInternalServerError,
			"AUTHOR_FETCH_FAILED",
			"failed to fetch author",
		)
		return
	}

	c.JSON(http.StatusOK, toAuthorResponse(*author))
}

// CreateAuthor godoc
// @Summary      Create an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        payload  body      AuthorRequest             true  "Author to create"
// @Success      201      {object}  Author
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req AuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	author := model.Author{
		FirstName: *req.FirstName,
		LastName:  *req.LastName,
	}

	if err := h.repo.Create(c.Request.Context(), &author); err != nil {
		writeStoreError(c, err, http.StatusInternalServerError,
			"AUTHOR_CREATE_FAILED",
			"failed to create author",
		)
		return
	}

	c.JSON(http.StatusCreated, toAuthorResponse(author))
}

// UpdateAuthor godoc
// @Summary      Replace an author
// @Description  Replace both names of an existing author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Author ID"
// @Param        payload  body      AuthorRequest             true  "New author names"
// @Success      200      {object}  Author
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      404      {object}  validation.ErrorResponse  "Author not found"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	var req AuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	id, ok := parseID(c)
	if !ok {
		authorNotFound(c)
		return
	}

	ctx := c.Request.Context()

	author := model.Author{
		ID:        id,
		FirstName: *req.FirstName,
		LastName:  *req.LastName,
	}

	if err := h.repo.Update(ctx, &author); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			authorNotFound(c)
			return
		}

		writeStoreError(c, err, http.StatusInternalServerError,
			"AUTHOR_UPDATE_FAILED",
			"failed to update author",
		)
		return
	}

	updated, err := h.repo.FindByID(ctx, id)
	if err != nil {
		writeStoreError(c, err, http.StatusInternalServerError,
			"AUTHOR_FETCH_FAILED",
			"failed to fetch updated author",
		)
		return
	}

	c.JSON(http.StatusOK, toAuthorResponse(*updated))
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Description  Delete an author that no book references
// @Tags         authors
// @Produce      json
// @Param        id   path      int                       true  "Author ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      409  {object}  validation.ErrorResponse  "Author still has books"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		authorNotFound(c)
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			authorNotFound(c)
		case errors.Is(err, repository.ErrForeignKeyViolation):
			writeError(c, http.StatusConflict,
				"AUTHOR_HAS_BOOKS",
				"author is referenced by existing books",
			)
		default:
			writeStoreError(c, err, http.StatusInternalServerError,
				"AUTHOR_DELETE_FAILED",
				"failed to delete author",
			)
		}
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Author has been successfully deleted"})
}

func authorNotFound(c *gin.Context) {
	writeError(c, http.StatusNotFound,
		"AUTHOR_NOT_FOUND",
		"Author could not be found",
	)
}
