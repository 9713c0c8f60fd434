package handlers

import (
	"net/http"
	"strconv"

	"inkwell/services/ranking"
	"inkwell/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultPopularLimit = 10

// RankingHandler exposes the popularity listings.
type RankingHandler struct {
	Store ranking.RankingStore
}

func NewRankingHandler(store ranking.RankingStore) *RankingHandler {
	return &RankingHandler{Store: store}
}

// PopularQuotesHandler returns the top quotes by engagement score.
func (h *RankingHandler) PopularQuotesHandler(c *gin.Context) {
	h.popular(c, ranking.CategoryQuotes)
}

// PopularBooksHandler returns the top books by engagement score.
func (h *RankingHandler) PopularBooksHandler(c *gin.Context) {
	h.popular(c, ranking.CategoryBooks)
}

func (h *RankingHandler) popular(c *gin.Context, category string) {
	logger := getLogger(c)

	limit := int64(defaultPopularLimit)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	ranked, err := h.Store.TopN(c.Request.Context(), category, limit)
	if err != nil {
		logger.Error("Failed to read popularity ranking",
			zap.String("category", category), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load ranking", err.Error())
		return
	}

	c.JSON(http.StatusOK, ranked)
}
