package queue

import (
	"time"

	"pagepilot/internal/service"
	"pagepilot/internal/transfer"
)

type Queue struct {
	ar service.AutoReplyService
}

func NewQueue(ar service.AutoReplyService) *Queue {
	return &Queue{
		ar: ar,
	}
}

const TaskTypeEvaluateComment = "comment:evaluate"

type EvaluateCommentPayload struct {
	UserID  int64            `json:"user_id"`
	Comment transfer.Comment `json:"comment"`
	SeenAt  time.Time        `json:"seen_at"`
}
