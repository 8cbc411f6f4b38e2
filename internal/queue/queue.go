package queue

import (
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

func EnqueueComment(asynqClient *asynq.Client, payload EvaluateCommentPayload) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeEvaluateComment, taskPayload)

	_, err = asynqClient.Enqueue(task, asynq.MaxRetry(3))
	if err != nil {
		return err
	}

	log.Printf("Comment queued for evaluation: %s", payload.Comment.ID)
	return nil
}
