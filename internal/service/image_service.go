package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	config "github.com/fofostudio/marketing-api/configs"
	"github.com/fofostudio/marketing-api/internal/gdrive"
	"github.com/fofostudio/marketing-api/internal/models"
	"github.com/fofostudio/marketing-api/internal/repository"
	"github.com/fofostudio/marketing-api/internal/transfer"
)

const (
	nanobananaAPIBase = "https://api.nanobananaapi.ai/api/v1/nanobanana"

	generationPollInterval = 2 * time.Second
	generationMaxAttempts  = 30

	socialPiecesFolderName = "Social Pieces"
	promptMessageLen       = 150
)

type ImageService interface {
	RegenerateImage(ctx context.Context, token string, req *transfer.RegenerateImageRequest) (string, error)
}

type imageService struct {
	cfg    config.Config
	drive  gdrive.Client
	cal    repository.CalendarRepository
	client *http.Client
}

func NewImageService(cfg config.Config, drive gdrive.Client, cal repository.CalendarRepository) ImageService {
	return &imageService{cfg: cfg, drive: drive, cal: cal, client: http.DefaultClient}
}

// RegenerateImage produces a fresh branded piece for the post: it kicks off a
// generation task, polls until the result is ready, stores the file in Drive
// under Social Pieces/<date> and points the post's image cell at it. The whole
// round trip can take up to a minute, so callers run it off the request path.
func (s *imageService) RegenerateImage(ctx context.Context, token string, req *transfer.RegenerateImageRequest) (string, error) {
	if token == "" {
		return "", repository.ErrMissingToken
	}
	if req.PostID == "" || req.Description == "" {
		return "", errors.New("missing post_id or description")
	}
	if s.cfg.NanobananaAPIKey == "" {
		return "", errors.New("nanobanana api key not configured")
	}

	prompt := buildImagePrompt(req.Description, req.Type)
	aspectRatio := "4:5"
	if req.Type == models.PostTypeStory {
		aspectRatio = "9:16"
	}

	taskID, err := s.startGeneration(ctx, prompt, aspectRatio)
	if err != nil {
		return "", err
	}
	slog.Info("image generation task created", "post_id", req.PostID, "task_id", taskID)

	resultURL, err := s.waitForResult(ctx, taskID)
	if err != nil {
		return "", err
	}

	content, err := s.download(ctx, resultURL)
	if err != nil {
		return "", fmt.Errorf("downloading generated image: %w", err)
	}

	fileID, err := s.storeInDrive(ctx, token, taskID, req.Type, content)
	if err != nil {
		return "", err
	}

	if err := s.drive.SetPublicReadable(ctx, token, fileID); err != nil {
		return "", fmt.Errorf("making file public: %w", err)
	}

	imageURL := driveImageHost + fileID
	if err := s.cal.UpdateImageURL(ctx, token, req.PostID, imageURL); err != nil {
		return "", fmt.Errorf("updating post image: %w", err)
	}

	slog.Info("image regenerated", "post_id", req.PostID, "file_id", fileID)
	return imageURL, nil
}

type nanobananaResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		TaskID string `json:"taskId"`
		Info   struct {
			ResultImageURL string `json:"resultImageUrl"`
		} `json:"info"`
	} `json:"data"`
}

func (s *imageService) startGeneration(ctx context.Context, prompt, aspectRatio string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"prompt":      prompt,
		"resolution":  "2K",
		"aspectRatio": aspectRatio,
		"model":       "nano-banana-pro",
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, nanobananaAPIBase+"/generate-pro", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.NanobananaAPIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	var resp nanobananaResponse
	if err := s.do(httpReq, &resp); err != nil {
		return "", err
	}
	if resp.Code != 200 {
		if resp.Msg != "" {
			return "", errors.New(resp.Msg)
		}
		return "", fmt.Errorf("nanobanana error: code %d", resp.Code)
	}
	if resp.Data.TaskID == "" {
		return "", errors.New("no taskId returned from nanobanana")
	}
	return resp.Data.TaskID, nil
}

func (s *imageService) waitForResult(ctx context.Context, taskID string) (string, error) {
	ticker := time.NewTicker(generationPollInterval)
	defer ticker.Stop()

	for attempt := 0; attempt < generationMaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
			fmt.Sprintf("%s/record-info?taskId=%s", nanobananaAPIBase, taskID), nil)
		if err != nil {
			return "", err
		}
		httpReq.Header.Set("Authorization", "Bearer "+s.cfg.NanobananaAPIKey)

		var resp nanobananaResponse
		if err := s.do(httpReq, &resp); err != nil {
			return "", err
		}

		if resp.Code == 200 && resp.Data.Info.ResultImageURL != "" {
			return resp.Data.Info.ResultImageURL, nil
		}
		if resp.Code == 501 {
			if resp.Msg != "" {
				return "", fmt.Errorf("image generation failed: %s", resp.Msg)
			}
			return "", errors.New("image generation failed")
		}
	}

	return "", errors.New("image generation timed out")
}

func (s *imageService) download(ctx context.Context, imageURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// storeInDrive files the image under Social Pieces/<today>, creating both
// folders on first use.
func (s *imageService) storeInDrive(ctx context.Context, token, taskID, postType string, content []byte) (string, error) {
	piecesID, err := s.findOrCreateFolder(ctx, token, s.cfg.DriveRootFolderID, socialPiecesFolderName)
	if err != nil {
		return "", err
	}

	today := time.Now().Format("2006-01-02")
	dateFolderID, err := s.findOrCreateFolder(ctx, token, piecesID, today)
	if err != nil {
		return "", err
	}

	prefix := "feed"
	if postType == models.PostTypeStory {
		prefix = "story"
	}
	shortID := taskID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	name := fmt.Sprintf("%s_%s_%s.jpg", prefix, today, shortID)

	fileID, err := s.drive.UploadFile(ctx, token, dateFolderID, name, "image/jpeg", content)
	if err != nil {
		return "", fmt.Errorf("uploading generated image: %w", err)
	}
	return fileID, nil
}

func (s *imageService) findOrCreateFolder(ctx context.Context, token, parentID, name string) (string, error) {
	id, err := s.drive.FindFolder(ctx, token, parentID, name)
	if err != nil {
		return "", fmt.Errorf("locating folder %q: %w", name, err)
	}
	if id != "" {
		return id, nil
	}

	id, err = s.drive.CreateFolder(ctx, token, parentID, name)
	if err != nil {
		return "", fmt.Errorf("creating folder %q: %w", name, err)
	}
	return id, nil
}

func (s *imageService) do(req *http.Request, out interface{}) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}

// buildImagePrompt wraps the post copy in the brand's visual guidelines. Only
// the first line of the description feeds the prompt; long captions drown the
// layout instructions.
func buildImagePrompt(description, postType string) string {
	mainMessage := description
	if idx := strings.Index(mainMessage, "\n"); idx != -1 {
		mainMessage = mainMessage[:idx]
	}
	if runes := []rune(mainMessage); len(runes) > promptMessageLen {
		mainMessage = string(runes[:promptMessageLen])
	}

	brandStyle := "FofoStudio brand style, premium dark aesthetic, orange accents (#ff7519), glassmorphism, high legibility, commercial professional look, modern tech vibe"

	formatGuidance := "square feed post, clear hierarchy, product/service focus, call-to-action visible"
	if postType == models.PostTypeStory {
		formatGuidance = "vertical story format, bold title at top, clear CTA at bottom, mobile-optimized"
	}

	return fmt.Sprintf("%s, %s. Main message: %q. Clear text, high contrast, marketing-ready, professional composition.", brandStyle, formatGuidance, mainMessage)
}
