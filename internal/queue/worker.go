package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

func (j *Queue) HandleEvaluateCommentTask(ctx context.Context, task *asynq.Task) error {
	var payload EvaluateCommentPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	if err := j.ar.HandleComment(ctx, payload.UserID, &payload.Comment); err != nil {
		log.Printf("Error evaluating comment %s: %v", payload.Comment.ID, err)
		return err
	}

	return nil
}
