package domain

import "time"

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

type ContentStyle string

const (
	StyleEngaging    ContentStyle = "engaging"
	StyleInformative ContentStyle = "informative"
	StylePromotional ContentStyle = "promotional"
)

// Post is one unit of social content tied to a single product and platform.
// PlatformPostID is set exactly when Posted is true.
type Post struct {
	ID             string
	OwnerID        string
	ProductID      string
	Platform       Platform
	Content        string
	AIGenerated    bool
	Posted         bool
	PlatformPostID string
	CreatedAt      time.Time
	PostedAt       time.Time // zero until published
}

func (p *Post) Status() PostStatus {
	if p.Posted {
		return PostStatusPublished
	}
	return PostStatusDraft
}
