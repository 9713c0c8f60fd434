package notification

import (
	"context"
	"fmt"

	devicetokenRepo "inkwell/database/repository/devicetoken"
	"inkwell/models"
	"inkwell/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

const (
	// maxBodyLength is the cap applied to notification bodies before the
	// ellipsis suffix is appended.
	maxBodyLength = 100
	ellipsis      = "..."

	screenQuoteDetail = "quoteDetail"
)

// PushClient is the subset of the FCM messaging API the dispatcher uses.
// *messaging.Client satisfies it; tests stub it.
type PushClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NotificationService fans pushes out to every active device of a member.
type NotificationService interface {
	// DispatchLikeNotification notifies the quote's owner that another member
	// liked it. Per-device delivery failures deactivate that device's
	// registration and never surface; only token-registry errors do.
	DispatchLikeNotification(ctx context.Context, ownerID string, quote *models.Quote) error

	// SendMemberPush delivers an ad-hoc push to every active device of a
	// member with the same per-device failure isolation.
	SendMemberPush(ctx context.Context, memberID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Tokens devicetokenRepo.DeviceTokenRepository
	Push   PushClient
}

func NewDefaultNotificationService(tokens devicetokenRepo.DeviceTokenRepository, push PushClient) (*DefaultNotificationService, error) {
	if tokens == nil || push == nil {
		return nil, fmt.Errorf("notification service initialization error: token repository or push client is nil")
	}
	return &DefaultNotificationService{Tokens: tokens, Push: push}, nil
}

// DispatchLikeNotification builds a like push from the quote and fans it out.
// Self-like suppression is the like workflow's job; by the time this runs the
// liker and owner are known to differ.
func (s *DefaultNotificationService) DispatchLikeNotification(ctx context.Context, ownerID string, quote *models.Quote) error {
	excerpt := truncateWithEllipsis(quote.Content, maxBodyLength)
	data := map[string]string{
		"quoteId": quote.ID,
		"screen":  screenQuoteDetail,
		"content": excerpt,
	}
	return s.fanOut(ctx, ownerID, "Someone liked your quote ❤️", excerpt, data)
}

// SendMemberPush delivers a push with caller-supplied content.
func (s *DefaultNotificationService) SendMemberPush(ctx context.Context, memberID, title, body string, data map[string]string) error {
	return s.fanOut(ctx, memberID, title, truncateWithEllipsis(body, maxBodyLength), data)
}

// fanOut sends to every active device of the member, one delivery at a time.
// A failed send deactivates that device and moves on; the loop never aborts
// for a delivery error. No transaction couples the send and the deactivation:
// a crash in between leaves the token active and it simply fails again on the
// next dispatch.
func (s *DefaultNotificationService) fanOut(ctx context.Context, memberID, title, body string, data map[string]string) error {
	logger := utils.GetLogger()

	tokens, err := s.Tokens.FindActiveByMember(memberID)
	if err != nil {
		return fmt.Errorf("fanOut: failed to load device tokens for member %s: %w", memberID, err)
	}
	if len(tokens) == 0 {
		// The common case: the member has no registered devices.
		return nil
	}

	for _, token := range tokens {
		msg := &messaging.Message{
			Token: token.DeviceToken,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
		}

		if _, err := s.Push.Send(ctx, msg); err != nil {
			logger.Warn("push delivery failed, deactivating device",
				zap.String("memberId", token.MemberID),
				zap.String("deviceId", token.DeviceID),
				zap.Error(err))

			if derr := s.Tokens.Deactivate(token.MemberID, token.DeviceID); derr != nil {
				return fmt.Errorf("fanOut: failed to deactivate device %s for member %s: %w", token.DeviceID, token.MemberID, derr)
			}
			continue
		}
	}
	return nil
}

// truncateWithEllipsis caps s at max runes and appends the ellipsis suffix
// when anything was cut.
func truncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + ellipsis
}
