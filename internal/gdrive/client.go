package gdrive

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// File is one entry from a Drive folder listing.
type File struct {
	ID            string
	Name          string
	MimeType      string
	Size          int64
	CreatedTime   string
	ThumbnailLink string
}

// Client wraps the Drive operations the asset flows need. Like the sheets
// client, it takes the caller's bearer token per call.
type Client interface {
	ListFiles(ctx context.Context, token, folderID string) ([]File, error)
	FindFolder(ctx context.Context, token, parentID, name string) (string, error)
	CreateFolder(ctx context.Context, token, parentID, name string) (string, error)
	UploadFile(ctx context.Context, token, folderID, name, mimeType string, content []byte) (string, error)
	SetPublicReadable(ctx context.Context, token, fileID string) error
}

type client struct{}

func NewClient() Client {
	return &client{}
}

func (c *client) service(ctx context.Context, token string) (*drive.Service, error) {
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	return drive.NewService(ctx, option.WithHTTPClient(httpClient))
}

func (c *client) ListFiles(ctx context.Context, token, folderID string) ([]File, error) {
	svc, err := c.service(ctx, token)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)
	resp, err := svc.Files.List().
		Q(query).
		Fields("files(id,name,mimeType,size,createdTime,thumbnailLink)").
		OrderBy("createdTime desc").
		PageSize(50).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing files in folder %s: %w", folderID, err)
	}

	files := make([]File, 0, len(resp.Files))
	for _, f := range resp.Files {
		if f.MimeType == folderMimeType {
			continue
		}
		files = append(files, File{
			ID:            f.Id,
			Name:          f.Name,
			MimeType:      f.MimeType,
			Size:          f.Size,
			CreatedTime:   f.CreatedTime,
			ThumbnailLink: f.ThumbnailLink,
		})
	}
	return files, nil
}

func (c *client) FindFolder(ctx context.Context, token, parentID, name string) (string, error) {
	svc, err := c.service(ctx, token)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf("'%s' in parents and name='%s' and mimeType='%s' and trashed=false",
		parentID, name, folderMimeType)
	resp, err := svc.Files.List().Q(query).Fields("files(id,name)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("searching folder %q: %w", name, err)
	}

	if len(resp.Files) == 0 {
		return "", nil
	}
	return resp.Files[0].Id, nil
}

func (c *client) CreateFolder(ctx context.Context, token, parentID, name string) (string, error) {
	svc, err := c.service(ctx, token)
	if err != nil {
		return "", err
	}

	folder, err := svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("creating folder %q: %w", name, err)
	}
	return folder.Id, nil
}

func (c *client) UploadFile(ctx context.Context, token, folderID, name, mimeType string, content []byte) (string, error) {
	svc, err := c.service(ctx, token)
	if err != nil {
		return "", err
	}

	file, err := svc.Files.Create(&drive.File{
		Name:    name,
		Parents: []string{folderID},
	}).Media(bytes.NewReader(content)).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("uploading %q: %w", name, err)
	}
	return file.Id, nil
}

func (c *client) SetPublicReadable(ctx context.Context, token, fileID string) error {
	svc, err := c.service(ctx, token)
	if err != nil {
		return err
	}

	_, err = svc.Permissions.Create(fileID, &drive.Permission{
		Role: "reader",
		Type: "anyone",
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("setting public permission on %s: %w", fileID, err)
	}
	return nil
}
