// Package upload implements the field-keyed multipart upload gate: per-field
// MIME allow-lists, size and count limits, and collision-resistant on-disk
// naming under a directory per field.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/buildscape/marketplace-api/internal/api/metrics"
)

const (
	// MaxFileSize is the per-file cap.
	MaxFileSize = 10 << 20 // 10MB
	// MaxFiles is the per-request cap across all fields.
	MaxFiles = 10
)

// ValidationError reports a request the gate refused: an oversized file, too
// many files, or a disallowed content type. Handlers map it to a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// FileMeta describes one stored file.
type FileMeta struct {
	OriginalName string `json:"original_name"`
	Filename     string `json:"filename"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimetype"`
	URL          string `json:"url"`
}

// fieldDirs maps multipart field names to storage subdirectories. Unlisted
// fields land in general/.
var fieldDirs = map[string]string{
	"avatar":    "avatars",
	"portfolio": "portfolio",
	"documents": "documents",
	"project":   "projects",
}

// documentTypes are the content types accepted in the documents field.
var documentTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

// Store writes validated multipart files to a base directory and computes
// their public URLs.
type Store struct {
	baseDir string
	baseURL string
}

// NewStore creates a Store rooted at baseDir. URLs are computed against
// baseURL (e.g. "http://localhost:8080").
func NewStore(baseDir, baseURL string) *Store {
	return &Store{baseDir: baseDir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Save validates and stores every file in the form. It fails on the first
// offending file, naming it, and stores nothing further; files already
// written stay on disk (single best-effort attempt, no compensation).
func (s *Store) Save(form *multipart.Form) ([]FileMeta, error) {
	total := 0
	for _, headers := range form.File {
		total += len(headers)
	}
	if total > MaxFiles {
		metrics.UploadRejectionsTotal.WithLabelValues("count").Inc()
		return nil, &ValidationError{Message: fmt.Sprintf("Too many files. Maximum is %d files.", MaxFiles)}
	}

	var saved []FileMeta
	for field, headers := range form.File {
		for _, header := range headers {
			meta, err := s.saveOne(field, header)
			if err != nil {
				return nil, err
			}
			metrics.UploadsTotal.WithLabelValues(field).Inc()
			saved = append(saved, *meta)
		}
	}
	return saved, nil
}

func (s *Store) saveOne(field string, header *multipart.FileHeader) (*FileMeta, error) {
	if header.Size > MaxFileSize {
		metrics.UploadRejectionsTotal.WithLabelValues("size").Inc()
		return nil, &ValidationError{Message: fmt.Sprintf("File %s is too large. Maximum size is 10MB.", header.Filename)}
	}

	mimeType := header.Header.Get("Content-Type")
	if err := checkFileType(field, header.Filename, mimeType); err != nil {
		metrics.UploadRejectionsTotal.WithLabelValues("type").Inc()
		return nil, err
	}

	subdir := fieldDirs[field]
	if subdir == "" {
		subdir = "general"
	}
	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	filename := generateFilename(field, header.Filename)
	path := filepath.Join(dir, filename)

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create stored file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("write stored file: %w", err)
	}

	return &FileMeta{
		OriginalName: header.Filename,
		Filename:     filename,
		Path:         path,
		Size:         header.Size,
		MimeType:     mimeType,
		URL:          fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, subdir, filename),
	}, nil
}

// checkFileType enforces the per-field MIME allow-lists. Fields without a
// list accept anything.
func checkFileType(field, filename, mimeType string) error {
	switch field {
	case "avatar":
		if !strings.HasPrefix(mimeType, "image/") {
			return &ValidationError{Message: fmt.Sprintf("File %s rejected: avatar must be an image file", filename)}
		}
	case "portfolio":
		if !strings.HasPrefix(mimeType, "image/") {
			return &ValidationError{Message: fmt.Sprintf("File %s rejected: portfolio files must be images", filename)}
		}
	case "documents":
		if _, ok := documentTypes[mimeType]; !ok {
			return &ValidationError{Message: fmt.Sprintf("File %s rejected: invalid document format", filename)}
		}
	}
	return nil
}

// generateFilename builds a collision-resistant name:
// <field>-<unix millis>-<uuid fragment><original extension>.
func generateFilename(field, original string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s%s", field, time.Now().UnixMilli(), suffix, filepath.Ext(original))
}
