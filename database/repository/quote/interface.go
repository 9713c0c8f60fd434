package quoteRepo

import (
	"errors"

	"inkwell/models"
)

// ErrAlreadyLiked signals that the member has already liked the quote.
var ErrAlreadyLiked = errors.New("quote already liked by member")

// QuoteRepository provides persistence for quotes and their likes.
type QuoteRepository interface {
	Create(quote *models.Quote) error
	GetByID(id string) (*models.Quote, error)

	// IncrementViews atomically bumps the view counter and returns the fresh
	// document, so callers see the post-increment count.
	IncrementViews(id string) (*models.Quote, error)

	// AddLike records a like and bumps the quote's like counter. A repeat like
	// by the same member returns ErrAlreadyLiked.
	AddLike(like *models.Like) (*models.Quote, error)
}
