package models

import "time"

// DeviceToken stores a member's push registration for one device.
// There is one document per (member, deviceId) pair; re-registering the same
// device updates the token value in place.
type DeviceToken struct {
	MemberID    string    `bson:"memberId" json:"memberId"`
	DeviceID    string    `bson:"deviceId" json:"deviceId"`
	DeviceToken string    `bson:"deviceToken" json:"deviceToken"`
	DeviceType  string    `bson:"deviceType" json:"deviceType"` // ios, android, web
	IsActive    bool      `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
