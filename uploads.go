package blog

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// MaxCoverImageSize is the upload cap for cover images.
const MaxCoverImageSize = 5 << 20

var allowedCoverImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ErrUnsupportedImageType rejects uploads outside the jpeg/png/webp whitelist.
var ErrUnsupportedImageType = errors.New(
	"unsupported image type, expected jpeg, png, or webp",
	errors.CategoryValidation,
).WithCode(errors.CodeBadRequest).
	WithTextCode("UNSUPPORTED_IMAGE_TYPE")

// ErrImageTooLarge rejects uploads over MaxCoverImageSize.
var ErrImageTooLarge = errors.New(
	"image exceeds the 5MB upload limit",
	errors.CategoryValidation,
).WithCode(errors.CodeBadRequest).
	WithTextCode("IMAGE_TOO_LARGE")

// IsUnsupportedImageType matches ErrUnsupportedImageType including clones
func IsUnsupportedImageType(err error) bool {
	return hasTextCode(err, ErrUnsupportedImageType.TextCode)
}

// IsImageTooLarge matches ErrImageTooLarge including clones
func IsImageTooLarge(err error) bool {
	return hasTextCode(err, ErrImageTooLarge.TextCode)
}

// fileProvider is the slice of the request context we need for uploads. The
// fiber adapter satisfies it; adapters that do not simply mean no file was
// uploaded.
type fileProvider interface {
	FormFile(key string) (*multipart.FileHeader, error)
}

// CoverImageStore writes uploaded cover images to a local directory served
// as static files, and hands back the public URL for the stored file.
type CoverImageStore struct {
	dir          string
	publicPrefix string
	logger       Logger
}

type CoverImageStoreOption func(*CoverImageStore) *CoverImageStore

func WithUploadsLogger(logger Logger) CoverImageStoreOption {
	return func(s *CoverImageStore) *CoverImageStore {
		s.logger = logger
		return s
	}
}

// NewCoverImageStore creates the upload directory if needed. publicPrefix is
// the URL path the directory is served under, e.g. "/uploads".
func NewCoverImageStore(dir, publicPrefix string, opts ...CoverImageStoreOption) (*CoverImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create uploads directory").
			WithMetadata(map[string]any{"dir": dir})
	}

	s := &CoverImageStore{
		dir:          dir,
		publicPrefix: strings.TrimSuffix(publicPrefix, "/"),
		logger:       defLogger{},
	}

	for _, opt := range opts {
		s = opt(s)
	}

	return s, nil
}

// SaveFromRequest stores the uploaded file under the given form field. A
// request without that file is not an error, the caller gets an empty URL
// and keeps whatever image the record already has.
func (s *CoverImageStore) SaveFromRequest(ctx router.Context, field string) (string, error) {
	provider, ok := ctx.(fileProvider)
	if !ok {
		return "", nil
	}

	header, err := provider.FormFile(field)
	if err != nil || header == nil {
		return "", nil
	}

	return s.Save(header)
}

// Save validates and persists an uploaded cover image. Filenames are
// timestamped so re-uploading the same file never clobbers a previous post's
// image.
func (s *CoverImageStore) Save(header *multipart.FileHeader) (string, error) {
	if header.Size > MaxCoverImageSize {
		return "", ErrImageTooLarge.Clone().WithMetadata(map[string]any{
			"size": header.Size,
		})
	}

	src, err := header.Open()
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to open uploaded file")
	}
	defer src.Close()

	contentType, err := sniffContentType(src)
	if err != nil {
		return "", err
	}

	if _, ok := allowedCoverImageTypes[contentType]; !ok {
		return "", ErrUnsupportedImageType.Clone().WithMetadata(map[string]any{
			"content_type": contentType,
		})
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(header.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to store uploaded file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, MaxCoverImageSize)); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to store uploaded file")
	}

	return s.publicPrefix + "/" + name, nil
}

// Remove deletes a previously stored image. Best effort, default images and
// URLs outside our prefix are left alone.
func (s *CoverImageStore) Remove(publicURL string) {
	if publicURL == "" || publicURL == DefaultCoverImageURL {
		return
	}

	if !strings.HasPrefix(publicURL, s.publicPrefix+"/") {
		return
	}

	name := filepath.Base(publicURL)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove stored image: ", "url", publicURL, "error", err)
	}
}

// sniffContentType detects the MIME type from the file contents rather than
// trusting the client-provided header, then rewinds the reader.
func sniffContentType(src multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := src.Read(buf)
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to read uploaded file")
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to rewind uploaded file")
	}

	contentType := http.DetectContentType(buf[:n])
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}

	return contentType, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "-")
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "upload"
	}
	return name
}
