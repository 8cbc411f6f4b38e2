package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"

	config "pagepilot/configs"
	"pagepilot/internal/models"
	"pagepilot/internal/repository"
	"pagepilot/internal/transfer"
	"pagepilot/pkg/utils"
)

const graphAPIBaseURL = "https://graph.facebook.com/v18.0"

// Graph API timestamps come back as "2023-01-02T15:04:05+0000".
const graphTimeLayout = "2006-01-02T15:04:05-0700"

type FacebookService interface {
	ConnectURL(state string) string
	ConnectCallback(ctx context.Context, code string, userID int64) error
	CreatePost(ctx context.Context, page *models.PageProfile, message, imageURL string) (transfer.PublishResult, error)
	ReplyToComment(ctx context.Context, page *models.PageProfile, commentID, message string) (transfer.PublishResult, error)
	ListPosts(ctx context.Context, page *models.PageProfile) ([]*transfer.FacebookPost, error)
	ListComments(ctx context.Context, page *models.PageProfile, postID string) ([]*transfer.Comment, error)
	PostMetrics(ctx context.Context, page *models.PageProfile, postID string) (*transfer.PostMetrics, error)
}

type facebookService struct {
	cfg     config.Config
	pp      repository.PageProfileRepository
	baseURL string
	client  *http.Client
}

func NewFacebookService(cfg config.Config, pp repository.PageProfileRepository) FacebookService {
	return &facebookService{
		cfg:     cfg,
		pp:      pp,
		baseURL: graphAPIBaseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (s *facebookService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.FacebookAppID,
		ClientSecret: s.cfg.FacebookAppSecret,
		RedirectURL:  s.cfg.FacebookRedirectURI,
		Scopes:       []string{"pages_show_list", "pages_read_engagement", "pages_manage_posts", "pages_manage_engagement"},
		Endpoint:     facebook.Endpoint,
	}
}

func (s *facebookService) ConnectURL(state string) string {
	return s.oauthConfig().AuthCodeURL(state)
}

// ConnectCallback exchanges the OAuth code, picks the first page the user
// administers and stores its profile with the page token encrypted.
func (s *facebookService) ConnectCallback(ctx context.Context, code string, userID int64) error {
	if code == "" {
		err := errors.New("code is empty")
		slog.Info(err.Error())
		return err
	}

	oauthConfig := s.oauthConfig()
	if oauthConfig.ClientID == "" || oauthConfig.ClientSecret == "" {
		err := errors.New("facebook OAuth configuration is incomplete")
		slog.Info(err.Error())
		return err
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	pages, err := s.listManagedPages(ctx, token.AccessToken)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		err = errors.New("user does not administer any page")
		slog.Info(err.Error())
		return err
	}

	page := pages[0]
	encryptedToken, err := utils.Encrypt([]byte(page.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	profile := &models.PageProfile{
		UserID:          userID,
		PageID:          page.ID,
		PageName:        page.Name,
		Category:        page.Category,
		ContentLanguage: "en",
		AccessToken:     encryptedToken,
	}

	return s.pp.Upsert(ctx, profile)
}

func (s *facebookService) listManagedPages(ctx context.Context, userToken string) ([]transfer.FacebookPage, error) {
	endpoint := fmt.Sprintf("%s/me/accounts?fields=id,name,category,access_token&access_token=%s",
		s.baseURL, url.QueryEscape(userToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	var body struct {
		Data  []transfer.FacebookPage `json:"data"`
		Error *graphError             `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if body.Error != nil {
		return nil, errors.New(body.Error.Message)
	}

	return body.Data, nil
}

type graphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

type graphWriteResponse struct {
	ID     string      `json:"id"`
	PostID string      `json:"post_id"`
	Error  *graphError `json:"error"`
}

func (s *facebookService) pageToken(page *models.PageProfile) (string, error) {
	return utils.Decrypt(page.AccessToken, []byte(s.cfg.SecretKey))
}

// CreatePost publishes to the page feed, or as a photo post when imageURL is
// set. A Graph-level rejection comes back in the result payload, not as an
// error; only transport failures return an error.
func (s *facebookService) CreatePost(ctx context.Context, page *models.PageProfile, message, imageURL string) (transfer.PublishResult, error) {
	token, err := s.pageToken(page)
	if err != nil {
		return transfer.PublishResult{}, err
	}

	var endpoint string
	params := url.Values{}
	params.Add("access_token", token)

	if imageURL != "" {
		endpoint = fmt.Sprintf("%s/%s/photos", s.baseURL, page.PageID)
		params.Add("url", imageURL)
		params.Add("caption", message)
	} else {
		endpoint = fmt.Sprintf("%s/%s/feed", s.baseURL, page.PageID)
		params.Add("message", message)
	}

	return s.graphWrite(ctx, endpoint, params)
}

func (s *facebookService) ReplyToComment(ctx context.Context, page *models.PageProfile, commentID, message string) (transfer.PublishResult, error) {
	token, err := s.pageToken(page)
	if err != nil {
		return transfer.PublishResult{}, err
	}

	endpoint := fmt.Sprintf("%s/%s/comments", s.baseURL, commentID)
	params := url.Values{}
	params.Add("access_token", token)
	params.Add("message", message)

	return s.graphWrite(ctx, endpoint, params)
}

func (s *facebookService) graphWrite(ctx context.Context, endpoint string, params url.Values) (transfer.PublishResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return transfer.PublishResult{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return transfer.PublishResult{}, err
	}
	defer resp.Body.Close()

	var body graphWriteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Info(err.Error())
		return transfer.PublishResult{}, err
	}

	if body.Error != nil {
		return transfer.PublishResult{ErrorMessage: body.Error.Message}, nil
	}

	id := body.ID
	if body.PostID != "" {
		id = body.PostID
	}
	if id == "" {
		return transfer.PublishResult{ErrorMessage: "platform returned no post id"}, nil
	}
	return transfer.PublishResult{ID: id}, nil
}

func (s *facebookService) ListPosts(ctx context.Context, page *models.PageProfile) ([]*transfer.FacebookPost, error) {
	token, err := s.pageToken(page)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/feed?fields=id,message,created_time,permalink_url,comments.summary(true)&limit=25&access_token=%s",
		s.baseURL, page.PageID, url.QueryEscape(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	var body struct {
		Data []struct {
			ID           string `json:"id"`
			Message      string `json:"message"`
			CreatedTime  string `json:"created_time"`
			PermalinkURL string `json:"permalink_url"`
			Comments     struct {
				Summary struct {
					TotalCount int `json:"total_count"`
				} `json:"summary"`
			} `json:"comments"`
		} `json:"data"`
		Error *graphError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if body.Error != nil {
		return nil, errors.New(body.Error.Message)
	}

	posts := make([]*transfer.FacebookPost, 0, len(body.Data))
	for _, p := range body.Data {
		createdTime, _ := time.Parse(graphTimeLayout, p.CreatedTime)
		posts = append(posts, &transfer.FacebookPost{
			ID:           p.ID,
			Message:      p.Message,
			CreatedTime:  createdTime,
			PermalinkURL: p.PermalinkURL,
			CommentCount: p.Comments.Summary.TotalCount,
		})
	}
	return posts, nil
}

func (s *facebookService) ListComments(ctx context.Context, page *models.PageProfile, postID string) ([]*transfer.Comment, error) {
	token, err := s.pageToken(page)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/comments?fields=id,message,from,created_time&access_token=%s",
		s.baseURL, postID, url.QueryEscape(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	var body struct {
		Data []struct {
			ID      string `json:"id"`
			Message string `json:"message"`
			From    struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"from"`
			CreatedTime string `json:"created_time"`
		} `json:"data"`
		Error *graphError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if body.Error != nil {
		return nil, errors.New(body.Error.Message)
	}

	comments := make([]*transfer.Comment, 0, len(body.Data))
	for _, c := range body.Data {
		createdTime, _ := time.Parse(graphTimeLayout, c.CreatedTime)
		comments = append(comments, &transfer.Comment{
			ID:          c.ID,
			PostID:      postID,
			Message:     c.Message,
			AuthorID:    c.From.ID,
			AuthorName:  c.From.Name,
			CreatedTime: createdTime,
		})
	}
	return comments, nil
}

func (s *facebookService) PostMetrics(ctx context.Context, page *models.PageProfile, postID string) (*transfer.PostMetrics, error) {
	token, err := s.pageToken(page)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/insights?metric=post_impressions,post_engagements&access_token=%s",
		s.baseURL, postID, url.QueryEscape(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	var body struct {
		Data []struct {
			Name   string `json:"name"`
			Values []struct {
				Value int64 `json:"value"`
			} `json:"values"`
		} `json:"data"`
		Error *graphError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if body.Error != nil {
		return nil, errors.New(body.Error.Message)
	}

	metrics := &transfer.PostMetrics{PostID: postID}
	for _, m := range body.Data {
		if len(m.Values) == 0 {
			continue
		}
		switch m.Name {
		case "post_impressions":
			metrics.Impressions = m.Values[0].Value
		case "post_engagements":
			metrics.Engagements = m.Values[0].Value
		}
	}
	return metrics, nil
}
