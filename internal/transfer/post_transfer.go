package transfer

// PostUpdate carries the caller-supplied partial fields for a row update.
// Nil pointer means "keep the existing cell value".
type PostUpdate struct {
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Platform    *string `json:"platform"`
	ImageURL    *string `json:"image_url"`
}

type PostCreation struct {
	AssetID     string `json:"asset_id"`
	AssetURL    string `json:"asset_url"`
	AssetName   string `json:"asset_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Platform    string `json:"platform"`
}

type UpdateDateRequest struct {
	PostID  string `json:"post_id"`
	NewDate string `json:"new_date"`
}

type UpdateImageRequest struct {
	PostID   string `json:"post_id"`
	ImageURL string `json:"image_url"`
}

type UploadImageRequest struct {
	PostID    string `json:"post_id"`
	ImageData string `json:"image_data"`
	FileName  string `json:"file_name"`
}

type RegenerateImageRequest struct {
	PostID      string `json:"post_id"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Platform    string `json:"platform"`
}
