package job

import (
	"context"
	"time"

	"pagepilot/internal/service"
)

// DispatchJob moves due scheduled posts through publication on every cron
// tick.
type DispatchJob struct {
	ss service.SchedulingService
}

func NewDispatchJob(ss service.SchedulingService) *DispatchJob {
	return &DispatchJob{
		ss: ss,
	}
}

func (c *DispatchJob) DispatchDuePosts() {
	ctx := context.Background()

	c.ss.ProcessDuePosts(ctx, time.Now().UTC())
}
