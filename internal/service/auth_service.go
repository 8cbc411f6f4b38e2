package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	config "pagepilot/configs"
	"pagepilot/internal/models"
	"pagepilot/internal/repository"
	"pagepilot/internal/transfer"
)

type AuthService interface {
	LoginURL(state string) string
	LoginCallback(ctx context.Context, code string) (err error, userID int64)
}

type authService struct {
	cfg config.Config
	u   repository.UserRepository
}

func NewAuthService(cfg config.Config, u repository.UserRepository) AuthService {
	return &authService{
		cfg: cfg,
		u:   u,
	}
}

func (s *authService) googleConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURI,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}
}

func (s *authService) LoginURL(state string) string {
	return s.googleConfig().AuthCodeURL(state)
}

func (s *authService) LoginCallback(ctx context.Context, code string) (err error, userID int64) {

	if code == "" {
		err = errors.New("code is empty")
		slog.Info(err.Error())
		return err, 0
	}

	oauth2Config := s.googleConfig()

	if oauth2Config.ClientID == "" || oauth2Config.ClientSecret == "" {
		err = errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return err, 0
	}

	token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return err, 0
	}

	client := oauth2Config.Client(ctx, token)

	userInfo, err := GetUserInfo(client)
	if err != nil {
		return err, 0
	}

	user, isExist, err := s.u.GetByEmail(ctx, userInfo.Email)
	if err != nil {
		return err, 0
	}

	if !isExist || user.GoogleID == "" {
		userID, err = s.u.Create(ctx, nil, &models.User{
			GoogleID:       userInfo.ID,
			Email:          userInfo.Email,
			Name:           userInfo.Name,
			ProfilePicture: userInfo.Picture,
		})

		if err != nil {
			slog.Info(err.Error())
			return err, 0
		}
	} else {
		userID = user.ID
	}

	return nil, userID
}

func GetUserInfo(client *http.Client) (*transfer.GoogleUserInfo, error) {
	userInfoURL := "https://www.googleapis.com/oauth2/v1/userinfo"

	response, err := client.Get(userInfoURL)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error fetching user info: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		slog.Info("Unexpected response status")
		return nil, fmt.Errorf("unexpected response status: %d", response.StatusCode)
	}

	var userInfo transfer.GoogleUserInfo
	if err := json.NewDecoder(response.Body).Decode(&userInfo); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error decoding user info: %w", err)
	}

	return &userInfo, nil
}
