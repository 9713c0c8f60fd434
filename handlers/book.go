package handlers

import (
	"net/http"

	"inkwell/models"
	"inkwell/services/book"
	"inkwell/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookHandler exposes the book endpoints.
type BookHandler struct {
	Service book.BookService
}

func NewBookHandler(svc book.BookService) *BookHandler {
	return &BookHandler{Service: svc}
}

// CreateBookHandler adds a book to the catalogue.
func (h *BookHandler) CreateBookHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.Book
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid book request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	created, err := h.Service.CreateBook(&req)
	if err != nil {
		logger.Error("Failed to create book", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create book", err.Error())
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetBookHandler returns the book and registers the view as an engagement event.
func (h *BookHandler) GetBookHandler(c *gin.Context) {
	logger := getLogger(c)

	id := c.Param("id")
	b, err := h.Service.ViewBook(c.Request.Context(), id)
	if err != nil {
		logger.Error("Failed to fetch book", zap.String("bookId", id), zap.Error(err))
		utils.JSONError(c, http.StatusNotFound, "Book not found", err.Error())
		return
	}

	c.JSON(http.StatusOK, b)
}
