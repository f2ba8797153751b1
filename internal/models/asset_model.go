package models

// Asset is a file from the Drive media library, annotated with whether any
// calendar post already references it.
type Asset struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Size           string   `json:"size"`
	Created        string   `json:"created"`
	Thumbnail      string   `json:"thumbnail"`
	URL            string   `json:"url"`
	MimeType       string   `json:"mimeType"`
	UsedInCalendar bool     `json:"used_in_calendar"`
	UsedBy         *PostRef `json:"used_by,omitempty"`
}

// PostRef points back at the calendar post that uses an asset.
type PostRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

const (
	AssetTypeImage = "image"
	AssetTypeVideo = "video"
	AssetTypePDF   = "pdf"
	AssetTypeDoc   = "doc"
	AssetTypeSheet = "sheet"
	AssetTypeFile  = "file"
)
