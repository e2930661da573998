package domain

import "github.com/shopspring/decimal"

// Location is the destination of a trip post.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Post is a shared trip. OwnerUserID is set from the authenticated caller at
// creation time and is the identity compared on every mutation.
type Post struct {
	PostID      string          `json:"postID"`
	OwnerUserID string          `json:"user"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	MapLink     string          `json:"mapLink"`
	MinPrice    decimal.Decimal `json:"minPrice"`
	MaxPrice    decimal.Decimal `json:"maxPrice"`
	NumberOfDays int            `json:"numberOfDays"`
	Location    Location        `json:"location"`
	Photos      []string        `json:"photos"`
	Timestamps
}
