package transfer

type ScheduleCreation struct {
	Content       string `json:"content" form:"content"`
	ScheduledTime string `json:"scheduled_time" form:"scheduled_time"`
}

type CancelRequest struct {
	PostID int64 `json:"post_id" form:"post_id"`
}
