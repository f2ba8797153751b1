package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	config "github.com/fofostudio/marketing-api/configs"
	"github.com/fofostudio/marketing-api/internal/models"
	"github.com/fofostudio/marketing-api/internal/transfer"
)

type PublishService interface {
	PublishNow(ctx context.Context, req *transfer.PublishRequest) ([]transfer.PublishResult, error)
}

type publishService struct {
	cfg    config.Config
	client *http.Client
}

func NewPublishService(cfg config.Config) PublishService {
	return &publishService{cfg: cfg, client: http.DefaultClient}
}

// PublishNow pushes the post to each requested platform. Per-platform failures
// land in the result entries instead of failing the whole call, so one broken
// integration does not block the other.
func (s *publishService) PublishNow(ctx context.Context, req *transfer.PublishRequest) ([]transfer.PublishResult, error) {
	if req.Description == "" {
		return nil, errors.New("missing description")
	}
	if s.cfg.Meta.AccessToken == "" || s.cfg.Meta.PageID == "" {
		return nil, errors.New("meta access token not configured")
	}

	message := req.Description
	if req.Hashtags != "" {
		message = req.Description + "\n\n" + req.Hashtags
	}

	platform := req.Platform
	if platform == "" {
		platform = models.PlatformBoth
	}

	var results []transfer.PublishResult

	if platform == models.PlatformBoth || platform == models.PlatformFacebook {
		results = append(results, s.publishToFacebook(ctx, message, req.ImageURL))
	}
	if platform == models.PlatformBoth || platform == models.PlatformInstagram {
		results = append(results, s.publishToInstagram(ctx, message, req.ImageURL, req.Type))
	}

	return results, nil
}

func (s *publishService) publishToFacebook(ctx context.Context, message, imageURL string) transfer.PublishResult {
	result := transfer.PublishResult{Platform: models.PlatformFacebook}

	endpoint := fmt.Sprintf("%s/%s/feed", graphAPIBase, s.cfg.Meta.PageID)
	params := url.Values{
		"access_token": {s.cfg.Meta.AccessToken},
		"message":      {message},
	}
	if imageURL != "" {
		endpoint = fmt.Sprintf("%s/%s/photos", graphAPIBase, s.cfg.Meta.PageID)
		params.Set("url", imageURL)
	}

	var resp struct {
		ID     string `json:"id"`
		PostID string `json:"post_id"`
	}
	if err := s.graphPost(ctx, endpoint, params, &resp); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	result.PostID = resp.ID
	if resp.PostID != "" {
		result.PostID = resp.PostID
	}
	result.Message = "Publicado en Facebook"
	return result
}

func (s *publishService) publishToInstagram(ctx context.Context, message, imageURL, postType string) transfer.PublishResult {
	result := transfer.PublishResult{Platform: models.PlatformInstagram}

	if imageURL == "" {
		result.Error = "Instagram posts require an image URL"
		return result
	}

	igUserID, err := s.instagramBusinessAccount(ctx)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	containerParams := url.Values{
		"access_token": {s.cfg.Meta.AccessToken},
		"image_url":    {imageURL},
	}
	if postType == models.PostTypeStory {
		containerParams.Set("media_type", "STORIES")
	} else {
		containerParams.Set("caption", message)
	}

	var container struct {
		ID string `json:"id"`
	}
	if err := s.graphPost(ctx, fmt.Sprintf("%s/%s/media", graphAPIBase, igUserID), containerParams, &container); err != nil {
		result.Error = err.Error()
		return result
	}

	publishParams := url.Values{
		"access_token": {s.cfg.Meta.AccessToken},
		"creation_id":  {container.ID},
	}

	var published struct {
		ID string `json:"id"`
	}
	if err := s.graphPost(ctx, fmt.Sprintf("%s/%s/media_publish", graphAPIBase, igUserID), publishParams, &published); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	result.PostID = published.ID
	result.Message = "Publicado en Instagram"
	if postType == models.PostTypeStory {
		result.Message = "Story publicada en Instagram"
	}
	return result
}

func (s *publishService) instagramBusinessAccount(ctx context.Context) (string, error) {
	endpoint := fmt.Sprintf("%s/%s?fields=instagram_business_account&access_token=%s",
		graphAPIBase, s.cfg.Meta.PageID, url.QueryEscape(s.cfg.Meta.AccessToken))

	var resp struct {
		InstagramBusinessAccount struct {
			ID string `json:"id"`
		} `json:"instagram_business_account"`
	}
	if err := s.graphGet(ctx, endpoint, &resp); err != nil {
		return "", err
	}
	if resp.InstagramBusinessAccount.ID == "" {
		return "", errors.New("no Instagram Business Account linked to this page")
	}
	return resp.InstagramBusinessAccount.ID, nil
}

type graphError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *publishService) graphPost(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeGraphResponse(resp, out)
}

func (s *publishService) graphGet(ctx context.Context, endpoint string, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeGraphResponse(resp, out)
}

func decodeGraphResponse(resp *http.Response, out interface{}) error {
	if resp.StatusCode != http.StatusOK {
		var ge graphError
		if err := json.NewDecoder(resp.Body).Decode(&ge); err == nil && ge.Error.Message != "" {
			return errors.New(ge.Error.Message)
		}
		return fmt.Errorf("graph api error: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
