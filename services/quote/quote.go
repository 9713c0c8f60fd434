package quote

import (
	"context"
	"fmt"

	quoteRepo "inkwell/database/repository/quote"
	"inkwell/models"
	"inkwell/services/notification"
	"inkwell/services/ranking"
	"inkwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuoteService owns the quote workflows that feed the engagement pipeline.
type QuoteService interface {
	CreateQuote(ownerID string, quote *models.Quote) (*models.Quote, error)
	// ViewQuote increments the view counter and records the engagement in the
	// popularity ranking as a best-effort side effect.
	ViewQuote(ctx context.Context, id string) (*models.Quote, error)
	// LikeQuote persists the like and, unless the liker owns the quote, fans a
	// push notification out to the owner's devices as a best-effort side effect.
	LikeQuote(ctx context.Context, quoteID, memberID string) (*models.Quote, error)
}

// DefaultQuoteService is the production implementation.
type DefaultQuoteService struct {
	Repo     quoteRepo.QuoteRepository
	Ranking  ranking.RankingStore
	Notifier notification.NotificationService
}

func (s *DefaultQuoteService) CreateQuote(ownerID string, q *models.Quote) (*models.Quote, error) {
	if q.Content == "" {
		return nil, fmt.Errorf("quote content is required")
	}
	q.ID = uuid.NewString()
	q.OwnerID = ownerID
	q.Views = 0
	q.Likes = 0

	if err := s.Repo.Create(q); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}
	return q, nil
}

// ViewQuote commits the view increment first; a ranking failure is logged and
// swallowed so the read never fails because of the side effect.
func (s *DefaultQuoteService) ViewQuote(ctx context.Context, id string) (*models.Quote, error) {
	q, err := s.Repo.IncrementViews(id)
	if err != nil {
		return nil, fmt.Errorf("failed to view quote %s: %w", id, err)
	}

	snapshot := models.PopularitySnapshot{
		ContentID: q.ID,
		Title:     q.Content,
		Author:    q.Author,
		Views:     q.Views,
	}
	if err := s.Ranking.RecordEngagement(ctx, ranking.CategoryQuotes, snapshot); err != nil {
		utils.GetLogger().Warn("failed to record quote engagement",
			zap.String("quoteId", q.ID), zap.Error(err))
	}

	return q, nil
}

// LikeQuote records the like, then dispatches the owner notification. A like
// on one's own quote is stored but never notified.
func (s *DefaultQuoteService) LikeQuote(ctx context.Context, quoteID, memberID string) (*models.Quote, error) {
	like := &models.Like{
		ID:       uuid.NewString(),
		QuoteID:  quoteID,
		MemberID: memberID,
	}

	q, err := s.Repo.AddLike(like)
	if err != nil {
		if err == quoteRepo.ErrAlreadyLiked {
			return nil, err
		}
		return nil, fmt.Errorf("failed to like quote %s: %w", quoteID, err)
	}

	if q.OwnerID == memberID {
		// Self-like: the like stands, but no notification goes out.
		return q, nil
	}

	if err := s.Notifier.DispatchLikeNotification(ctx, q.OwnerID, q); err != nil {
		// The like is already committed; a dispatch failure stays invisible
		// to the caller.
		utils.GetLogger().Warn("failed to dispatch like notification",
			zap.String("quoteId", q.ID),
			zap.String("ownerId", q.OwnerID),
			zap.Error(err))
	}

	return q, nil
}
