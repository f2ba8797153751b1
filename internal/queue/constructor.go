package queue

import (
	"github.com/fofostudio/marketing-api/internal/service"
)

type Queue struct {
	img service.ImageService
}

func NewQueue(img service.ImageService) *Queue {
	return &Queue{
		img: img,
	}
}

const TaskTypeRegenerateImage = "image:regenerate"

type RegenerateImagePayload struct {
	PostID      string `json:"post_id"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Platform    string `json:"platform"`
	AccessToken string `json:"access_token"`
}
