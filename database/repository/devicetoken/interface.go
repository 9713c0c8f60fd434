package devicetokenRepo

import "inkwell/models"

// DeviceTokenRepository manages push registrations, one row per (member, deviceId).
type DeviceTokenRepository interface {
	// Register upserts a registration. A deviceId that re-registers gets its
	// token value and type updated in place and is reactivated if it had been
	// marked inactive; no duplicate row is created.
	Register(token *models.DeviceToken) error

	// Unregister explicitly deactivates a registration.
	Unregister(memberID, deviceID string) error

	// Deactivate marks a registration inactive, typically after a failed push.
	Deactivate(memberID, deviceID string) error

	// FindActiveByMember returns the member's active registrations only.
	FindActiveByMember(memberID string) ([]models.DeviceToken, error)

	// DistinctActiveMembers lists every member that has at least one active
	// registration. Used by the trending digest worker.
	DistinctActiveMembers() ([]string, error)
}
