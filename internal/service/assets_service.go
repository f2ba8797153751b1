package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/h2non/filetype"
	gonanoid "github.com/matoous/go-nanoid/v2"

	config "github.com/fofostudio/marketing-api/configs"
	"github.com/fofostudio/marketing-api/internal/gdrive"
	"github.com/fofostudio/marketing-api/internal/models"
	"github.com/fofostudio/marketing-api/internal/repository"
	"github.com/fofostudio/marketing-api/internal/transfer"
)

const (
	uploadsFolderName = "Uploads"
	driveImageHost    = "https://lh3.googleusercontent.com/d/"
)

type AssetsService interface {
	List(ctx context.Context, token, filter string) ([]models.Asset, string, error)
	Upload(ctx context.Context, token string, req *transfer.UploadImageRequest) (string, error)
}

type assetsService struct {
	cfg   config.Config
	drive gdrive.Client
	cal   repository.CalendarRepository
}

func NewAssetsService(cfg config.Config, drive gdrive.Client, cal repository.CalendarRepository) AssetsService {
	return &assetsService{cfg: cfg, drive: drive, cal: cal}
}

func (s *assetsService) List(ctx context.Context, token, filter string) ([]models.Asset, string, error) {
	if token == "" {
		return nil, "", repository.ErrMissingToken
	}

	folderID := s.cfg.DriveRootFolderID
	folderName := "Root"

	switch filter {
	case "feed", "stories":
		folderName = "Social Pieces"
	case "logos":
		folderName = "Logos"
	case "photos":
		folderName = "Photos"
	default:
		filter = "all"
	}

	if filter != "all" {
		id, err := s.drive.FindFolder(ctx, token, s.cfg.DriveRootFolderID, folderName)
		if err != nil {
			slog.Error("folder lookup failed, falling back to root", "folder", folderName, "error", err)
		} else if id != "" {
			folderID = id
		}
	}

	files, err := s.drive.ListFiles(ctx, token, folderID)
	if err != nil {
		return nil, "", fmt.Errorf("listing drive files: %w", err)
	}

	assets := make([]models.Asset, 0, len(files))
	for _, f := range files {
		if (filter == "feed" || filter == "stories") &&
			!strings.HasPrefix(f.MimeType, "image/") && !strings.HasPrefix(f.MimeType, "video/") {
			continue
		}

		thumbnail := f.ThumbnailLink
		if thumbnail == "" {
			thumbnail = driveImageHost + f.ID
		}

		assets = append(assets, models.Asset{
			ID:        f.ID,
			Name:      f.Name,
			Type:      assetType(f.MimeType),
			Size:      formatFileSize(f.Size),
			Created:   f.CreatedTime,
			Thumbnail: thumbnail,
			URL:       driveImageHost + f.ID,
			MimeType:  f.MimeType,
		})
	}

	// Cross-reference against the current month's calendar. A failure here
	// only loses the annotation, never the listing.
	now := time.Now()
	posts, err := s.cal.ListMonth(ctx, token, now.Year(), int(now.Month()))
	if err != nil {
		slog.Error("calendar cross-reference skipped", "error", err)
	} else {
		Annotate(assets, posts)
	}

	return assets, folderName, nil
}

// Annotate flags every asset whose Drive file id appears inside some post's
// image URL. Substring match on purpose: the calendar and the library encode
// Drive links differently, so exact URL equality would miss real matches.
func Annotate(assets []models.Asset, posts []*models.Post) {
	for i := range assets {
		for _, post := range posts {
			if post.ImageURL == "" || !strings.Contains(post.ImageURL, assets[i].ID) {
				continue
			}
			assets[i].UsedInCalendar = true
			assets[i].UsedBy = &models.PostRef{
				ID:    post.ID,
				Title: post.Title,
				Date:  post.Date,
			}
			break
		}
	}
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// Upload stores a base64 image in the Uploads subfolder, makes it public and
// points the post's image cell at the new file. Returns the direct-view URL.
func (s *assetsService) Upload(ctx context.Context, token string, req *transfer.UploadImageRequest) (string, error) {
	if token == "" {
		return "", repository.ErrMissingToken
	}

	raw := req.ImageData
	if idx := strings.Index(raw, ";base64,"); idx != -1 {
		raw = raw[idx+len(";base64,"):]
	}
	content, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("decoding image data: %w", err)
	}

	kind, err := filetype.Match(content)
	if err != nil || (kind.Extension != "jpg" && kind.Extension != "png") {
		return "", errors.New("only jpeg and png uploads are supported")
	}

	folderID, err := s.drive.FindFolder(ctx, token, s.cfg.DriveRootFolderID, uploadsFolderName)
	if err != nil {
		return "", fmt.Errorf("locating uploads folder: %w", err)
	}
	if folderID == "" {
		folderID, err = s.drive.CreateFolder(ctx, token, s.cfg.DriveRootFolderID, uploadsFolderName)
		if err != nil {
			return "", fmt.Errorf("creating uploads folder: %w", err)
		}
	}

	suffix, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s", suffix, unsafeFileChars.ReplaceAllString(req.FileName, "_"))

	fileID, err := s.drive.UploadFile(ctx, token, folderID, name, kind.MIME.Value, content)
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}

	if err := s.drive.SetPublicReadable(ctx, token, fileID); err != nil {
		return "", fmt.Errorf("making file public: %w", err)
	}

	imageURL := driveImageHost + fileID
	if err := s.cal.UpdateImageURL(ctx, token, req.PostID, imageURL); err != nil {
		return "", fmt.Errorf("updating post image: %w", err)
	}

	return imageURL, nil
}

func assetType(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return models.AssetTypeImage
	case strings.HasPrefix(mimeType, "video/"):
		return models.AssetTypeVideo
	case strings.HasPrefix(mimeType, "application/pdf"):
		return models.AssetTypePDF
	case strings.Contains(mimeType, "document"):
		return models.AssetTypeDoc
	case strings.Contains(mimeType, "spreadsheet"):
		return models.AssetTypeSheet
	default:
		return models.AssetTypeFile
	}
}

func formatFileSize(bytes int64) string {
	if bytes == 0 {
		return "N/A"
	}
	units := []string{"B", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	return fmt.Sprintf("%.1f %s", value, units[i])
}
