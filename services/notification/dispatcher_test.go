package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"inkwell/models"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenRepo is an in-memory DeviceTokenRepository keyed by (member, deviceId).
type fakeTokenRepo struct {
	tokens map[string]*models.DeviceToken

	findErr       error
	deactivateErr error
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*models.DeviceToken)}
}

func repoKey(memberID, deviceID string) string {
	return memberID + "/" + deviceID
}

func (r *fakeTokenRepo) Register(token *models.DeviceToken) error {
	key := repoKey(token.MemberID, token.DeviceID)
	if existing, ok := r.tokens[key]; ok {
		existing.DeviceToken = token.DeviceToken
		existing.DeviceType = token.DeviceType
		existing.IsActive = true
		return nil
	}
	clone := *token
	clone.IsActive = true
	r.tokens[key] = &clone
	return nil
}

func (r *fakeTokenRepo) Unregister(memberID, deviceID string) error {
	return r.Deactivate(memberID, deviceID)
}

func (r *fakeTokenRepo) Deactivate(memberID, deviceID string) error {
	if r.deactivateErr != nil {
		return r.deactivateErr
	}
	token, ok := r.tokens[repoKey(memberID, deviceID)]
	if !ok {
		return fmt.Errorf("device %s for member %s not found", deviceID, memberID)
	}
	token.IsActive = false
	return nil
}

func (r *fakeTokenRepo) FindActiveByMember(memberID string) ([]models.DeviceToken, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var active []models.DeviceToken
	for _, token := range r.tokens {
		if token.MemberID == memberID && token.IsActive {
			active = append(active, *token)
		}
	}
	return active, nil
}

func (r *fakeTokenRepo) DistinctActiveMembers() ([]string, error) {
	seen := make(map[string]bool)
	var members []string
	for _, token := range r.tokens {
		if token.IsActive && !seen[token.MemberID] {
			seen[token.MemberID] = true
			members = append(members, token.MemberID)
		}
	}
	return members, nil
}

// fakePushClient records sends and fails delivery for configured tokens.
type fakePushClient struct {
	failTokens map[string]bool
	sent       []*messaging.Message
}

func (p *fakePushClient) Send(ctx context.Context, msg *messaging.Message) (string, error) {
	if p.failTokens[msg.Token] {
		return "", errors.New("registration-token-not-registered")
	}
	p.sent = append(p.sent, msg)
	return "projects/inkwell/messages/1", nil
}

func registerDevice(t *testing.T, repo *fakeTokenRepo, memberID, deviceID, tokenValue string) {
	t.Helper()
	require.NoError(t, repo.Register(&models.DeviceToken{
		MemberID:    memberID,
		DeviceID:    deviceID,
		DeviceToken: tokenValue,
		DeviceType:  "ios",
	}))
}

func testQuote(content string) *models.Quote {
	return &models.Quote{
		ID:      "q1",
		OwnerID: "owner",
		Content: content,
		Author:  "Seneca",
	}
}

func TestDispatchLikeNotificationPartialFailure(t *testing.T) {
	repo := newFakeTokenRepo()
	registerDevice(t, repo, "owner", "dev-a", "token-a")
	registerDevice(t, repo, "owner", "dev-b", "token-b")
	registerDevice(t, repo, "owner", "dev-c", "token-c")

	push := &fakePushClient{failTokens: map[string]bool{"token-b": true}}
	svc, err := NewDefaultNotificationService(repo, push)
	require.NoError(t, err)

	err = svc.DispatchLikeNotification(context.Background(), "owner", testQuote("We suffer more often in imagination than in reality"))
	require.NoError(t, err)

	// A and C delivered, B's registration is now inactive.
	assert.Len(t, push.sent, 2)
	assert.False(t, repo.tokens[repoKey("owner", "dev-b")].IsActive)
	assert.True(t, repo.tokens[repoKey("owner", "dev-a")].IsActive)
	assert.True(t, repo.tokens[repoKey("owner", "dev-c")].IsActive)
}

func TestDispatchLikeNotificationNoDevices(t *testing.T) {
	repo := newFakeTokenRepo()
	push := &fakePushClient{}
	svc, err := NewDefaultNotificationService(repo, push)
	require.NoError(t, err)

	// No registered devices is the common case, not an error.
	require.NoError(t, svc.DispatchLikeNotification(context.Background(), "owner", testQuote("hello")))
	assert.Empty(t, push.sent)
}

func TestDispatchLikeNotificationAllFail(t *testing.T) {
	repo := newFakeTokenRepo()
	registerDevice(t, repo, "owner", "dev-a", "token-a")
	registerDevice(t, repo, "owner", "dev-b", "token-b")

	push := &fakePushClient{failTokens: map[string]bool{"token-a": true, "token-b": true}}
	svc, err := NewDefaultNotificationService(repo, push)
	require.NoError(t, err)

	require.NoError(t, svc.DispatchLikeNotification(context.Background(), "owner", testQuote("hello")))

	assert.Empty(t, push.sent)
	for _, token := range repo.tokens {
		assert.False(t, token.IsActive)
	}
}

func TestDispatchLikeNotificationTokenListErrorSurfaces(t *testing.T) {
	repo := newFakeTokenRepo()
	repo.findErr = errors.New("mongo: connection reset")
	svc, err := NewDefaultNotificationService(repo, &fakePushClient{})
	require.NoError(t, err)

	err = svc.DispatchLikeNotification(context.Background(), "owner", testQuote("hello"))
	require.Error(t, err)
}

func TestDispatchLikeNotificationDeactivationErrorSurfaces(t *testing.T) {
	repo := newFakeTokenRepo()
	registerDevice(t, repo, "owner", "dev-a", "token-a")
	repo.deactivateErr = errors.New("mongo: connection reset")

	push := &fakePushClient{failTokens: map[string]bool{"token-a": true}}
	svc, err := NewDefaultNotificationService(repo, push)
	require.NoError(t, err)

	err = svc.DispatchLikeNotification(context.Background(), "owner", testQuote("hello"))
	require.Error(t, err)
}

func TestDispatchLikeNotificationPayload(t *testing.T) {
	repo := newFakeTokenRepo()
	registerDevice(t, repo, "owner", "dev-a", "token-a")

	push := &fakePushClient{}
	svc, err := NewDefaultNotificationService(repo, push)
	require.NoError(t, err)

	long := strings.Repeat("x", 150)
	require.NoError(t, svc.DispatchLikeNotification(context.Background(), "owner", testQuote(long)))

	require.Len(t, push.sent, 1)
	msg := push.sent[0]
	assert.Equal(t, "token-a", msg.Token)
	assert.Equal(t, strings.Repeat("x", 100)+"...", msg.Notification.Body)
	assert.Equal(t, "q1", msg.Data["quoteId"])
	assert.Equal(t, screenQuoteDetail, msg.Data["screen"])
}

func TestReRegisterInactiveDeviceReactivates(t *testing.T) {
	repo := newFakeTokenRepo()
	registerDevice(t, repo, "owner", "dev-a", "token-a")

	push := &fakePushClient{failTokens: map[string]bool{"token-a": true}}
	svc, err := NewDefaultNotificationService(repo, push)
	require.NoError(t, err)

	require.NoError(t, svc.DispatchLikeNotification(context.Background(), "owner", testQuote("hello")))
	assert.False(t, repo.tokens[repoKey("owner", "dev-a")].IsActive)

	// The same deviceId re-registering with a fresh token value reactivates
	// the existing row; no duplicate appears.
	registerDevice(t, repo, "owner", "dev-a", "token-a2")
	assert.Len(t, repo.tokens, 1)

	active, err := repo.FindActiveByMember("owner")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "token-a2", active[0].DeviceToken)
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "short", truncateWithEllipsis("short", 100))
	assert.Equal(t, strings.Repeat("a", 100)+"...", truncateWithEllipsis(strings.Repeat("a", 101), 100))
	// Rune-safe: multibyte content is cut on rune boundaries.
	assert.Equal(t, "인생은"+"...", truncateWithEllipsis("인생은 짧고 예술은 길다", 3))
}
