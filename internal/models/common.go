package models

import "time"

// Timestamps mirror the created_at/updated_at columns present on every table.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
