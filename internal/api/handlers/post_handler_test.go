package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagepilot/internal/models"
	"pagepilot/internal/transfer"
)

type fakeSchedulingService struct {
	cancelled  bool
	lastPostID int64
	lastUserID int64
}

func (f *fakeSchedulingService) Schedule(ctx context.Context, userID int64, sc *transfer.ScheduleCreation, file *multipart.FileHeader) (int64, error) {
	return 0, nil
}

func (f *fakeSchedulingService) List(ctx context.Context, userID int64) ([]*models.ScheduledPost, error) {
	return nil, nil
}

func (f *fakeSchedulingService) PostInfo(ctx context.Context, postID, userID int64) (*models.ScheduledPost, error) {
	return nil, nil
}

func (f *fakeSchedulingService) ListPendingDue(ctx context.Context, now time.Time) ([]*models.ScheduledPost, error) {
	return nil, nil
}

func (f *fakeSchedulingService) ProcessDuePosts(ctx context.Context, now time.Time) {}

func (f *fakeSchedulingService) Cancel(ctx context.Context, postID, userID int64) (bool, error) {
	f.lastPostID = postID
	f.lastUserID = userID
	return f.cancelled, nil
}

func newPostTestApp(svc *fakeSchedulingService) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "7")
		return c.Next()
	})
	app.Post("/posts/cancel", NewPostHandler(svc).CancelPost)
	return app
}

func TestCancelPost_ReadsPostIDFromBody(t *testing.T) {
	svc := &fakeSchedulingService{cancelled: true}
	app := newPostTestApp(svc)

	body, err := json.Marshal(transfer.CancelRequest{PostID: 42})
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, "/posts/cancel", bytes.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(42), svc.lastPostID)
	assert.Equal(t, int64(7), svc.lastUserID)
}

func TestCancelPost_MissingPostID(t *testing.T) {
	svc := &fakeSchedulingService{cancelled: true}
	app := newPostTestApp(svc)

	req := httptest.NewRequest(fiber.MethodPost, "/posts/cancel", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, svc.lastPostID)
}

func TestCancelPost_NotPending(t *testing.T) {
	svc := &fakeSchedulingService{cancelled: false}
	app := newPostTestApp(svc)

	body, err := json.Marshal(transfer.CancelRequest{PostID: 42})
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, "/posts/cancel", bytes.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
