package models

import "time"

// Quote is a member-authored quote taken from a book.
type Quote struct {
	ID        string    `bson:"id" json:"id"`
	OwnerID   string    `bson:"ownerId" json:"ownerId"`
	BookID    string    `bson:"bookId,omitempty" json:"bookId,omitempty"`
	Content   string    `bson:"content" json:"content"`
	Author    string    `bson:"author" json:"author"`
	Views     int64     `bson:"views" json:"views"`
	Likes     int64     `bson:"likes" json:"likes"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Like records that a member liked a quote. One row per (quote, member).
type Like struct {
	ID        string    `bson:"id" json:"id"`
	QuoteID   string    `bson:"quoteId" json:"quoteId"`
	MemberID  string    `bson:"memberId" json:"memberId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
