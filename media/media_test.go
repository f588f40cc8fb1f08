package media

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	mp4Bytes = []byte("\x00\x00\x00\x20ftypisom\x00\x00\x02\x00isomiso2avc1mp41\x00\x00\x00\x08free")
)

func TestDetect_Image(t *testing.T) {
	mime, ext, err := Detect(pngBytes, KindImage)

	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, ".png", ext)
}

func TestDetect_Video(t *testing.T) {
	mime, _, err := Detect(mp4Bytes, KindVideo)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(mime, "video/"), mime)
}

func TestDetect_WrongKind(t *testing.T) {
	_, _, err := Detect(pngBytes, KindVideo)
	assert.Error(t, err)

	_, _, err = Detect([]byte("just some text"), KindImage)
	assert.Error(t, err)
}

func TestFTPUploader_RemotePath(t *testing.T) {
	u := NewFTPUploader("ftp.example", "21", "u", "p", "https://cdn.example", "clean-india", "clean-india-proofs", time.Second)

	img := u.remotePath(KindImage, ".png")
	vid := u.remotePath(KindVideo, ".mp4")

	assert.True(t, strings.HasPrefix(img, "clean-india/"))
	assert.True(t, strings.HasSuffix(img, ".png"))
	assert.True(t, strings.HasPrefix(vid, "clean-india-proofs/"))
	assert.NotEqual(t, u.remotePath(KindImage, ".png"), img, "each upload gets a fresh name")
}
