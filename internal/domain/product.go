package domain

import "time"

// Product is owned by the external catalog; posts hold its ID only,
// never a copy, apart from content text baked in at generation time.
type Product struct {
	ID          string // catalog id (ASIN)
	OwnerID     string
	Title       string
	Description string
	Price       float64
	Currency    string
	ImageURLs   []string
	Category    string
	Brand       string
	UpdatedAt   time.Time
}
