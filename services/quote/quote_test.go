package quote

import (
	"context"
	"errors"
	"testing"

	quoteRepo "inkwell/database/repository/quote"
	"inkwell/models"
	"inkwell/services/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQuoteRepo holds a single quote and applies counter updates in memory.
type fakeQuoteRepo struct {
	quote   *models.Quote
	liked   map[string]bool
	likeErr error
}

func newFakeQuoteRepo(q *models.Quote) *fakeQuoteRepo {
	return &fakeQuoteRepo{quote: q, liked: make(map[string]bool)}
}

func (r *fakeQuoteRepo) Create(q *models.Quote) error {
	r.quote = q
	return nil
}

func (r *fakeQuoteRepo) GetByID(id string) (*models.Quote, error) {
	if r.quote == nil || r.quote.ID != id {
		return nil, errors.New("quote not found")
	}
	clone := *r.quote
	return &clone, nil
}

func (r *fakeQuoteRepo) IncrementViews(id string) (*models.Quote, error) {
	if r.quote == nil || r.quote.ID != id {
		return nil, errors.New("quote not found")
	}
	r.quote.Views++
	clone := *r.quote
	return &clone, nil
}

func (r *fakeQuoteRepo) AddLike(like *models.Like) (*models.Quote, error) {
	if r.likeErr != nil {
		return nil, r.likeErr
	}
	if r.quote == nil || r.quote.ID != like.QuoteID {
		return nil, errors.New("quote not found")
	}
	if r.liked[like.MemberID] {
		return nil, quoteRepo.ErrAlreadyLiked
	}
	r.liked[like.MemberID] = true
	r.quote.Likes++
	clone := *r.quote
	return &clone, nil
}

// fakeRankingStore records the engagement calls it receives.
type fakeRankingStore struct {
	recorded  []recordedEngagement
	recordErr error
}

type recordedEngagement struct {
	category string
	snapshot models.PopularitySnapshot
}

func (s *fakeRankingStore) RecordEngagement(ctx context.Context, category string, snapshot models.PopularitySnapshot) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.recorded = append(s.recorded, recordedEngagement{category: category, snapshot: snapshot})
	return nil
}

func (s *fakeRankingStore) TopN(ctx context.Context, category string, n int64) ([]models.RankedContent, error) {
	return nil, nil
}

// fakeNotifier counts dispatches.
type fakeNotifier struct {
	dispatched  []string // owner IDs
	dispatchErr error
}

func (n *fakeNotifier) DispatchLikeNotification(ctx context.Context, ownerID string, quote *models.Quote) error {
	if n.dispatchErr != nil {
		return n.dispatchErr
	}
	n.dispatched = append(n.dispatched, ownerID)
	return nil
}

func (n *fakeNotifier) SendMemberPush(ctx context.Context, memberID, title, body string, data map[string]string) error {
	return nil
}

func newService(q *models.Quote) (*DefaultQuoteService, *fakeQuoteRepo, *fakeRankingStore, *fakeNotifier) {
	repo := newFakeQuoteRepo(q)
	rank := &fakeRankingStore{}
	notifier := &fakeNotifier{}
	svc := &DefaultQuoteService{Repo: repo, Ranking: rank, Notifier: notifier}
	return svc, repo, rank, notifier
}

func storedQuote() *models.Quote {
	return &models.Quote{
		ID:      "q1",
		OwnerID: "owner",
		Content: "Be yourself; everyone else is already taken",
		Author:  "Oscar Wilde",
		Views:   4,
	}
}

func TestViewQuoteRecordsEngagement(t *testing.T) {
	svc, _, rank, _ := newService(storedQuote())

	q, err := svc.ViewQuote(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), q.Views)

	require.Len(t, rank.recorded, 1)
	assert.Equal(t, ranking.CategoryQuotes, rank.recorded[0].category)
	// The snapshot carries the post-increment view count.
	assert.Equal(t, int64(5), rank.recorded[0].snapshot.Views)
	assert.Equal(t, "q1", rank.recorded[0].snapshot.ContentID)
}

func TestViewQuoteSurvivesRankingFailure(t *testing.T) {
	svc, _, rank, _ := newService(storedQuote())
	rank.recordErr = errors.New("redis down")

	q, err := svc.ViewQuote(context.Background(), "q1")
	require.NoError(t, err)
	// The primary write committed even though the side effect failed.
	assert.Equal(t, int64(5), q.Views)
}

func TestLikeQuoteNotifiesOwner(t *testing.T) {
	svc, _, _, notifier := newService(storedQuote())

	q, err := svc.LikeQuote(context.Background(), "q1", "liker")
	require.NoError(t, err)
	assert.Equal(t, int64(1), q.Likes)

	require.Len(t, notifier.dispatched, 1)
	assert.Equal(t, "owner", notifier.dispatched[0])
}

func TestLikeQuoteSelfLikeNeverDispatches(t *testing.T) {
	svc, _, _, notifier := newService(storedQuote())

	q, err := svc.LikeQuote(context.Background(), "q1", "owner")
	require.NoError(t, err)
	// The like itself stands.
	assert.Equal(t, int64(1), q.Likes)
	// The dispatcher was never invoked.
	assert.Empty(t, notifier.dispatched)
}

func TestLikeQuoteSurvivesDispatchFailure(t *testing.T) {
	svc, _, _, notifier := newService(storedQuote())
	notifier.dispatchErr = errors.New("token registry unreachable")

	q, err := svc.LikeQuote(context.Background(), "q1", "liker")
	require.NoError(t, err)
	assert.Equal(t, int64(1), q.Likes)
}

func TestLikeQuoteRepeatLike(t *testing.T) {
	svc, _, _, notifier := newService(storedQuote())

	_, err := svc.LikeQuote(context.Background(), "q1", "liker")
	require.NoError(t, err)

	_, err = svc.LikeQuote(context.Background(), "q1", "liker")
	assert.Equal(t, quoteRepo.ErrAlreadyLiked, err)
	// Only the first like produced a notification.
	assert.Len(t, notifier.dispatched, 1)
}
