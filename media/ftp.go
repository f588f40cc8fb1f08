package media

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/jlaffaye/ftp"
)

// FTPUploader stores files on an FTP server whose root is published at baseURL.
// Each upload opens its own connection; a ServerConn is not safe for concurrent use.
type FTPUploader struct {
	addr     string
	user     string
	password string
	baseURL  string
	folders  map[Kind]string
	timeout  time.Duration
}

func NewFTPUploader(host, port, user, password, baseURL, imageFolder, videoFolder string, timeout time.Duration) *FTPUploader {
	return &FTPUploader{
		addr:     host + ":" + port,
		user:     user,
		password: password,
		baseURL:  baseURL,
		folders:  map[Kind]string{KindImage: imageFolder, KindVideo: videoFolder},
		timeout:  timeout,
	}
}

func (u *FTPUploader) Upload(ctx context.Context, data []byte, kind Kind) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	_, ext, err := Detect(data, kind)
	if err != nil {
		return "", err
	}
	remotePath := u.remotePath(kind, ext)

	conn, err := ftp.Dial(u.addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(u.timeout))
	if err != nil {
		return "", fmt.Errorf("failed to connect to FTP: %w", err)
	}
	defer conn.Quit()

	if err := conn.Login(u.user, u.password); err != nil {
		return "", fmt.Errorf("failed to login to FTP: %w", err)
	}

	// The folder usually exists already; MakeDir failing is only fatal if Stor fails too.
	_ = conn.MakeDir(u.folders[kind])

	if err := conn.Stor(remotePath, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return u.baseURL + "/" + remotePath, nil
}

func (u *FTPUploader) remotePath(kind Kind, ext string) string {
	return path.Join(u.folders[kind], uuid.NewString()+ext)
}
