package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	config "github.com/fofostudio/marketing-api/configs"
	"github.com/fofostudio/marketing-api/internal/transfer"
	"github.com/fofostudio/marketing-api/pkg/utils"
)

var googleScopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive.readonly",
	"openid",
	"email",
	"profile",
}

type AuthService interface {
	AuthURL() (string, error)
	Callback(ctx context.Context, code, state string) (*transfer.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*transfer.TokenResponse, error)
}

type authService struct {
	cfg config.Config
}

func NewAuthService(cfg config.Config) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURI,
		Scopes:       googleScopes,
		Endpoint:     google.Endpoint,
	}
}

func (s *authService) AuthURL() (string, error) {
	if s.cfg.GoogleClientID == "" || s.cfg.GoogleRedirectURI == "" {
		return "", errors.New("google oauth is not configured")
	}

	state, err := utils.GenerateStateToken(s.cfg.SecretKey, 10*time.Minute)
	if err != nil {
		return "", err
	}

	url := s.oauthConfig().AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
	return url, nil
}

func (s *authService) Callback(ctx context.Context, code, state string) (*transfer.TokenResponse, error) {
	if code == "" {
		return nil, errors.New("missing authorization code")
	}

	conf := s.oauthConfig()
	if conf.ClientID == "" || conf.ClientSecret == "" || conf.RedirectURL == "" {
		return nil, errors.New("google oauth is not configured")
	}

	if state != "" {
		if err := utils.ValidateStateToken(s.cfg.SecretKey, state); err != nil {
			slog.Info("rejected oauth callback with bad state", "error", err)
			return nil, errors.New("invalid oauth state")
		}
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	userInfo, err := fetchUserInfo(conf.Client(ctx, token))
	if err != nil {
		return nil, err
	}

	return &transfer.TokenResponse{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresIn:    expiresIn(token.Expiry),
		User:         userInfo,
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*transfer.TokenResponse, error) {
	if refreshToken == "" {
		return nil, errors.New("missing refresh_token")
	}

	conf := s.oauthConfig()
	if conf.ClientID == "" || conf.ClientSecret == "" {
		return nil, errors.New("google oauth is not configured")
	}

	source := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	return &transfer.TokenResponse{
		AccessToken: token.AccessToken,
		ExpiresIn:   expiresIn(token.Expiry),
	}, nil
}

func expiresIn(expiry time.Time) int {
	if expiry.IsZero() {
		return 0
	}
	return int(time.Until(expiry).Seconds())
}

func fetchUserInfo(client *http.Client) (*transfer.GoogleUserInfo, error) {
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error fetching user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status: %d", resp.StatusCode)
	}

	var userInfo transfer.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("error decoding user info: %w", err)
	}

	return &userInfo, nil
}
