package models

// PopularitySnapshot is a denormalized, point-in-time view of one content item
// taken at the moment of an engagement event. Its serialized form is both the
// value stored in the ranking structure and the member identity used for score
// lookups, so any field that differs between events yields a distinct entry.
type PopularitySnapshot struct {
	ContentID string `json:"contentId"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Views     int64  `json:"views"`
}

// RankedContent is one entry of a top-N popularity listing.
type RankedContent struct {
	Snapshot PopularitySnapshot `json:"snapshot"`
	Score    float64            `json:"score"`
}
