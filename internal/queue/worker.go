package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"

	"github.com/fofostudio/marketing-api/internal/transfer"
)

func (j *Queue) HandleRegenerateImageTask(ctx context.Context, task *asynq.Task) error {
	var payload RegenerateImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	req := &transfer.RegenerateImageRequest{
		PostID:      payload.PostID,
		Description: payload.Description,
		Type:        payload.Type,
		Platform:    payload.Platform,
	}

	imageURL, err := j.img.RegenerateImage(ctx, payload.AccessToken, req)
	if err != nil {
		log.Printf("Error regenerating image for post %s: %v", payload.PostID, err)
		return err
	}

	log.Printf("Image regenerated for post %s: %s", payload.PostID, imageURL)
	return nil
}
