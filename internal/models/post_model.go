package models

// Post is one calendar entry, materialized from a single spreadsheet row.
// Status is derived from date/time at read time and is never persisted.
type Post struct {
	ID          string `json:"id"`
	SheetName   string `json:"sheet_name"`
	RowIndex    int    `json:"row_index"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Hashtags    string `json:"hashtags"`
	Type        string `json:"type"`
	Platform    string `json:"platform"`
	ImageURL    string `json:"image_url"`
	Status      string `json:"status"`
}

const (
	PostTypeFeed     = "feed"
	PostTypeStory    = "story"
	PostTypeReel     = "reel"
	PostTypeCarousel = "carousel"
)

const (
	PlatformBoth      = "both"
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
)

const (
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
)
