package book

import (
	"context"
	"errors"
	"testing"

	"inkwell/models"
	"inkwell/services/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookRepo struct {
	book *models.Book
}

func (r *fakeBookRepo) Create(b *models.Book) error {
	r.book = b
	return nil
}

func (r *fakeBookRepo) GetByID(id string) (*models.Book, error) {
	if r.book == nil || r.book.ID != id {
		return nil, errors.New("book not found")
	}
	clone := *r.book
	return &clone, nil
}

func (r *fakeBookRepo) IncrementViews(id string) (*models.Book, error) {
	if r.book == nil || r.book.ID != id {
		return nil, errors.New("book not found")
	}
	r.book.Views++
	clone := *r.book
	return &clone, nil
}

type fakeRankingStore struct {
	recorded  []models.PopularitySnapshot
	category  string
	recordErr error
}

func (s *fakeRankingStore) RecordEngagement(ctx context.Context, category string, snapshot models.PopularitySnapshot) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.category = category
	s.recorded = append(s.recorded, snapshot)
	return nil
}

func (s *fakeRankingStore) TopN(ctx context.Context, category string, n int64) ([]models.RankedContent, error) {
	return nil, nil
}

func TestViewBookRecordsEngagement(t *testing.T) {
	repo := &fakeBookRepo{book: &models.Book{ID: "b1", Title: "Meditations", Author: "Marcus Aurelius", Views: 9}}
	rank := &fakeRankingStore{}
	svc := &DefaultBookService{Repo: repo, Ranking: rank}

	b, err := svc.ViewBook(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), b.Views)

	require.Len(t, rank.recorded, 1)
	assert.Equal(t, ranking.CategoryBooks, rank.category)
	assert.Equal(t, int64(10), rank.recorded[0].Views)
}

func TestViewBookSurvivesRankingFailure(t *testing.T) {
	repo := &fakeBookRepo{book: &models.Book{ID: "b1", Title: "Meditations", Views: 9}}
	rank := &fakeRankingStore{recordErr: errors.New("redis down")}
	svc := &DefaultBookService{Repo: repo, Ranking: rank}

	b, err := svc.ViewBook(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), b.Views)
}
