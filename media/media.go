// Package media uploads complaint images and proof videos to a hosted store and
// returns their public URLs.
package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Uploader stores data durably and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, kind Kind) (string, error)
}

// Detect sniffs data and returns its MIME type and file extension, failing when the
// content does not belong to kind.
func Detect(data []byte, kind Kind) (string, string, error) {
	m := mimetype.Detect(data)
	if !strings.HasPrefix(m.String(), string(kind)+"/") {
		return "", "", fmt.Errorf("expected %s content, got %s", kind, m.String())
	}
	return m.String(), m.Extension(), nil
}
