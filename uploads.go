package careers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// DefaultMaxUploadBytes caps image uploads at 5MB.
const DefaultMaxUploadBytes int64 = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedImageMimes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Uploader validates image uploads and decides where they land on disk
// and how they are addressed over HTTP.
type Uploader struct {
	Dir      string
	MaxBytes int64
}

func NewUploader(dir string) *Uploader {
	return &Uploader{Dir: dir, MaxBytes: DefaultMaxUploadBytes}
}

// Validate checks size and image type and returns the generated filename
// plus the public URL it will be served under.
func (u *Uploader) Validate(fh *multipart.FileHeader) (string, string, error) {
	maxBytes := u.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}

	if fh.Size > maxBytes {
		return "", "", goerrors.New("File too large. Maximum size is 5MB.", goerrors.CategoryValidation).
			WithTextCode("UPLOAD_TOO_LARGE").
			WithCode(goerrors.CodeBadRequest)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType := strings.ToLower(fh.Header.Get("Content-Type"))
	if !allowedImageExts[ext] || !allowedImageMimes[contentType] {
		return "", "", goerrors.New("Only image files are allowed (jpeg, jpg, png, gif, webp)", goerrors.CategoryValidation).
			WithTextCode("UPLOAD_BAD_TYPE").
			WithCode(goerrors.CodeBadRequest)
	}

	filename := fmt.Sprintf("image-%d-%s%s", time.Now().UnixMilli(), randomHex(8), ext)
	return filename, "/uploads/" + filename, nil
}

// Path returns the on-disk destination for a generated filename.
func (u *Uploader) Path(filename string) string {
	return filepath.Join(u.Dir, filename)
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
