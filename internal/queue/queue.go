package queue

import (
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

func EnqueueRegenerateImage(asynqClient *asynq.Client, payload RegenerateImagePayload) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeRegenerateImage, taskPayload)

	// The generation round trip can take a minute; give the worker headroom.
	_, err = asynqClient.Enqueue(task, asynq.Timeout(5*time.Minute), asynq.MaxRetry(1))
	if err != nil {
		return err
	}

	log.Printf("Task scheduled: regenerate image for post %s", payload.PostID)
	return nil
}
