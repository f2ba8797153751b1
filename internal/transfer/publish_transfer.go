package transfer

type PublishRequest struct {
	Description string `json:"description"`
	Hashtags    string `json:"hashtags"`
	ImageURL    string `json:"image_url"`
	Platform    string `json:"platform"`
	Type        string `json:"type"`
}

type PublishResult struct {
	Platform string `json:"platform"`
	Success  bool   `json:"success"`
	PostID   string `json:"post_id,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}
