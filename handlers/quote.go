package handlers

import (
	"net/http"

	quoteRepo "inkwell/database/repository/quote"
	"inkwell/models"
	"inkwell/services/quote"
	"inkwell/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QuoteHandler exposes the quote endpoints.
type QuoteHandler struct {
	Service quote.QuoteService
}

func NewQuoteHandler(svc quote.QuoteService) *QuoteHandler {
	return &QuoteHandler{Service: svc}
}

// CreateQuoteHandler creates a quote owned by the authenticated member.
func (h *QuoteHandler) CreateQuoteHandler(c *gin.Context) {
	logger := getLogger(c)

	memberID, exists := c.Get("memberID")
	if !exists {
		logger.Error("Member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.Quote
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid quote request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	created, err := h.Service.CreateQuote(memberID.(string), &req)
	if err != nil {
		logger.Error("Failed to create quote", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create quote", err.Error())
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetQuoteHandler returns the quote and registers the view as an engagement event.
func (h *QuoteHandler) GetQuoteHandler(c *gin.Context) {
	logger := getLogger(c)

	id := c.Param("id")
	q, err := h.Service.ViewQuote(c.Request.Context(), id)
	if err != nil {
		logger.Error("Failed to fetch quote", zap.String("quoteId", id), zap.Error(err))
		utils.JSONError(c, http.StatusNotFound, "Quote not found", err.Error())
		return
	}

	c.JSON(http.StatusOK, q)
}

// LikeQuoteHandler records a like by the authenticated member.
func (h *QuoteHandler) LikeQuoteHandler(c *gin.Context) {
	logger := getLogger(c)

	memberID, exists := c.Get("memberID")
	if !exists {
		logger.Error("Member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id := c.Param("id")
	q, err := h.Service.LikeQuote(c.Request.Context(), id, memberID.(string))
	if err != nil {
		if err == quoteRepo.ErrAlreadyLiked {
			utils.JSONError(c, http.StatusConflict, "Already liked", "You have already liked this quote")
			return
		}
		logger.Error("Failed to like quote", zap.String("quoteId", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to like quote", err.Error())
		return
	}

	c.JSON(http.StatusOK, q)
}
