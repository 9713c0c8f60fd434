package models

import "time"

// Book is a catalogued book that members can browse and quote from.
type Book struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Author    string    `bson:"author" json:"author"`
	Publisher string    `bson:"publisher,omitempty" json:"publisher,omitempty"`
	Views     int64     `bson:"views" json:"views"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
