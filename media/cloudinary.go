package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryUploader uploads to Cloudinary, one folder per kind.
type CloudinaryUploader struct {
	cld     *cloudinary.Cloudinary
	folders map[Kind]string
	timeout time.Duration
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret, imageFolder, videoFolder string, timeout time.Duration) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &CloudinaryUploader{
		cld:     cld,
		folders: map[Kind]string{KindImage: imageFolder, KindVideo: videoFolder},
		timeout: timeout,
	}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, data []byte, kind Kind) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	resp, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       u.folders[kind],
		ResourceType: string(kind),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", errors.New("cloudinary upload: empty secure url")
	}
	return resp.SecureURL, nil
}
