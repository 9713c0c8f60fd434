package book

import (
	"context"
	"fmt"

	bookRepo "inkwell/database/repository/book"
	"inkwell/models"
	"inkwell/services/ranking"
	"inkwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookService owns the book workflows that feed the popularity ranking.
type BookService interface {
	CreateBook(book *models.Book) (*models.Book, error)
	// ViewBook increments the view counter and records the engagement in the
	// popularity ranking as a best-effort side effect.
	ViewBook(ctx context.Context, id string) (*models.Book, error)
}

// DefaultBookService is the production implementation.
type DefaultBookService struct {
	Repo    bookRepo.BookRepository
	Ranking ranking.RankingStore
}

func (s *DefaultBookService) CreateBook(b *models.Book) (*models.Book, error) {
	if b.Title == "" {
		return nil, fmt.Errorf("book title is required")
	}
	b.ID = uuid.NewString()
	b.Views = 0

	if err := s.Repo.Create(b); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return b, nil
}

// ViewBook commits the view increment first; a ranking failure is logged and
// swallowed so the read never fails because of the side effect.
func (s *DefaultBookService) ViewBook(ctx context.Context, id string) (*models.Book, error) {
	b, err := s.Repo.IncrementViews(id)
	if err != nil {
		return nil, fmt.Errorf("failed to view book %s: %w", id, err)
	}

	snapshot := models.PopularitySnapshot{
		ContentID: b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Views:     b.Views,
	}
	if err := s.Ranking.RecordEngagement(ctx, ranking.CategoryBooks, snapshot); err != nil {
		utils.GetLogger().Warn("failed to record book engagement",
			zap.String("bookId", b.ID), zap.Error(err))
	}

	return b, nil
}
