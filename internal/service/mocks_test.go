package service

import (
	"context"
	"database/sql"
	"mime/multipart"
	"sort"
	"time"

	"pagepilot/internal/models"
	"pagepilot/internal/transfer"
)

type fakeScheduledPostRepo struct {
	posts     map[int64]*models.ScheduledPost
	nextID    int64
	claimErr  error
	markErr   error
	published map[int64]string
	failed    map[int64]string
}

func newFakeScheduledPostRepo() *fakeScheduledPostRepo {
	return &fakeScheduledPostRepo{
		posts:     make(map[int64]*models.ScheduledPost),
		nextID:    1,
		published: make(map[int64]string),
		failed:    make(map[int64]string),
	}
}

func (f *fakeScheduledPostRepo) add(post *models.ScheduledPost) *models.ScheduledPost {
	post.ID = f.nextID
	f.nextID++
	f.posts[post.ID] = post
	return post
}

func (f *fakeScheduledPostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.ScheduledPost) (int64, error) {
	return f.add(post).ID, nil
}

func (f *fakeScheduledPostRepo) GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error) {
	return f.posts[id], nil
}

func (f *fakeScheduledPostRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.ScheduledPost, error) {
	var out []*models.ScheduledPost
	for _, p := range f.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeScheduledPostRepo) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	p, ok := f.posts[postID]
	return ok && p.UserID == userID, nil
}

func (f *fakeScheduledPostRepo) ListDue(ctx context.Context, now time.Time) ([]*models.ScheduledPost, error) {
	var out []*models.ScheduledPost
	for _, p := range f.posts {
		if p.Status == models.PostStatusPending && !p.ScheduledTime.After(now) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledTime.Before(out[j].ScheduledTime)
	})
	return out, nil
}

func (f *fakeScheduledPostRepo) ClaimPending(ctx context.Context, id int64) (bool, error) {
	if f.claimErr != nil {
		return false, f.claimErr
	}
	p, ok := f.posts[id]
	if !ok || p.Status != models.PostStatusPending {
		return false, nil
	}
	p.Status = models.PostStatusPublishing
	return true, nil
}

func (f *fakeScheduledPostRepo) MarkPublished(ctx context.Context, id int64, platformPostID string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.posts[id].Status = models.PostStatusPublished
	f.posts[id].PlatformPostID = platformPostID
	f.published[id] = platformPostID
	return nil
}

func (f *fakeScheduledPostRepo) MarkFailed(ctx context.Context, id int64, errorDetail string) error {
	f.posts[id].Status = models.PostStatusFailed
	f.posts[id].ErrorDetail = errorDetail
	f.failed[id] = errorDetail
	return nil
}

func (f *fakeScheduledPostRepo) CancelPending(ctx context.Context, id, userID int64) (bool, error) {
	p, ok := f.posts[id]
	if !ok || p.UserID != userID || p.Status != models.PostStatusPending {
		return false, nil
	}
	delete(f.posts, id)
	return true, nil
}

type fakePageProfileRepo struct {
	profile *models.PageProfile
}

func (f *fakePageProfileRepo) GetByUserID(ctx context.Context, userID int64) (*models.PageProfile, bool, error) {
	if f.profile == nil {
		return nil, false, nil
	}
	return f.profile, true, nil
}

func (f *fakePageProfileRepo) Upsert(ctx context.Context, profile *models.PageProfile) error {
	f.profile = profile
	return nil
}

func (f *fakePageProfileRepo) UpdateDetails(ctx context.Context, userID int64, profile *models.PageProfile) error {
	return nil
}

func (f *fakePageProfileRepo) ListConnected(ctx context.Context) ([]*models.PageProfile, error) {
	if f.profile == nil {
		return nil, nil
	}
	return []*models.PageProfile{f.profile}, nil
}

type fakeFacebook struct {
	createResult transfer.PublishResult
	createErr    error
	createCalls  int
	messages     []string
	lastMessage  string
	lastImageURL string

	replyResult transfer.PublishResult
	replyErr    error
	replyCalls  int
	lastReply   string
}

func (f *fakeFacebook) ConnectURL(state string) string { return "" }

func (f *fakeFacebook) ConnectCallback(ctx context.Context, code string, userID int64) error {
	return nil
}

func (f *fakeFacebook) CreatePost(ctx context.Context, page *models.PageProfile, message, imageURL string) (transfer.PublishResult, error) {
	f.createCalls++
	f.messages = append(f.messages, message)
	f.lastMessage = message
	f.lastImageURL = imageURL
	return f.createResult, f.createErr
}

func (f *fakeFacebook) ReplyToComment(ctx context.Context, page *models.PageProfile, commentID, message string) (transfer.PublishResult, error) {
	f.replyCalls++
	f.lastReply = message
	return f.replyResult, f.replyErr
}

func (f *fakeFacebook) ListPosts(ctx context.Context, page *models.PageProfile) ([]*transfer.FacebookPost, error) {
	return nil, nil
}

func (f *fakeFacebook) ListComments(ctx context.Context, page *models.PageProfile, postID string) ([]*transfer.Comment, error) {
	return nil, nil
}

func (f *fakeFacebook) PostMetrics(ctx context.Context, page *models.PageProfile, postID string) (*transfer.PostMetrics, error) {
	return nil, nil
}

type fakeLLM struct {
	sentiment      transfer.Sentiment
	sentimentErr   error
	sentimentCalls int
	reply          string
	replyCalls     int
}

func (f *fakeLLM) AnalyzeSentiment(ctx context.Context, text string) (transfer.Sentiment, error) {
	f.sentimentCalls++
	return f.sentiment, f.sentimentErr
}

func (f *fakeLLM) GenerateReply(ctx context.Context, comment, replyContext string) string {
	f.replyCalls++
	return f.reply
}

func (f *fakeLLM) GenerateQuickReplies(ctx context.Context, comment, strategyContext string) []string {
	return nil
}

func (f *fakeLLM) GeneratePostSuggestions(ctx context.Context, prompt string) []transfer.PostSuggestion {
	return nil
}

func (f *fakeLLM) SummarizeActivity(ctx context.Context, posts []*transfer.FacebookPost) string {
	return ""
}

type fakeMedia struct {
	url string
	err error
}

func (f *fakeMedia) UploadImage(ctx context.Context, userID int64, file *multipart.FileHeader) (string, error) {
	return f.url, f.err
}

type fakeSettingsRepo struct {
	settings *models.AutoReplySettings
	created  int
}

func (f *fakeSettingsRepo) GetByUserID(ctx context.Context, userID int64) (*models.AutoReplySettings, bool, error) {
	if f.settings == nil {
		return nil, false, nil
	}
	return f.settings, true, nil
}

func (f *fakeSettingsRepo) Create(ctx context.Context, settings *models.AutoReplySettings) (int64, error) {
	f.settings = settings
	f.created++
	return 1, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, settings *models.AutoReplySettings, userID int64) error {
	f.settings = settings
	return nil
}

type fakeStrategyRepo struct {
	active *models.Strategy
}

func (f *fakeStrategyRepo) Create(ctx context.Context, strategy *models.Strategy) (int64, error) {
	return 1, nil
}

func (f *fakeStrategyRepo) GetByID(ctx context.Context, id int64) (*models.Strategy, bool, error) {
	return nil, false, nil
}

func (f *fakeStrategyRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.Strategy, error) {
	return nil, nil
}

func (f *fakeStrategyRepo) GetActive(ctx context.Context, userID int64) (*models.Strategy, bool, error) {
	if f.active == nil {
		return nil, false, nil
	}
	return f.active, true, nil
}

func (f *fakeStrategyRepo) Activate(ctx context.Context, userID, strategyID int64) error {
	return nil
}

func (f *fakeStrategyRepo) Remove(ctx context.Context, id int64) error { return nil }

type fakeReplyLogRepo struct {
	entries   []*models.ReplyLog
	sentToday int
	lastReply *time.Time
	seen      map[string]bool
}

func newFakeReplyLogRepo() *fakeReplyLogRepo {
	return &fakeReplyLogRepo{seen: make(map[string]bool)}
}

func (f *fakeReplyLogRepo) Create(ctx context.Context, entry *models.ReplyLog) (int64, error) {
	f.entries = append(f.entries, entry)
	f.seen[entry.CommentID] = true
	return int64(len(f.entries)), nil
}

func (f *fakeReplyLogRepo) CountForUserSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	return f.sentToday, nil
}

func (f *fakeReplyLogRepo) LastReplyToAuthor(ctx context.Context, userID int64, authorKey string) (*time.Time, error) {
	return f.lastReply, nil
}

func (f *fakeReplyLogRepo) Seen(ctx context.Context, userID int64, commentID string) (bool, error) {
	return f.seen[commentID], nil
}
