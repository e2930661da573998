package models

import "github.com/shopspring/decimal"

// Post is the database representation of a trip post row.
type Post struct {
	PostID       string          `db:"post_id"`
	OwnerUserID  string          `db:"owner_user_id"`
	Title        string          `db:"title"`
	Description  string          `db:"description"`
	MapLink      string          `db:"map_link"`
	MinPrice     decimal.Decimal `db:"min_price"`
	MaxPrice     decimal.Decimal `db:"max_price"`
	NumberOfDays int             `db:"number_of_days"`
	City         string          `db:"city"`
	Country      string          `db:"country"`
	Photos       []string        `db:"photos"`
	Timestamps
}
