package resume

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

// allowedExtensions are the upload formats accepted at intake. Legacy
// .doc is rejected before storage rather than at screening time.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

// Storage writes uploaded resumes to the local filesystem under a
// directory configured at startup.
type Storage struct {
	dir      string
	maxBytes int64
	logger   zerolog.Logger
}

func NewStorage(dir string, maxBytes int64, logger zerolog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create resume dir: %w", err)
	}
	return &Storage{
		dir:      dir,
		maxBytes: maxBytes,
		logger:   logger.With().Str("component", "resume_storage").Logger(),
	}, nil
}

// Save persists the uploaded file and returns its path. The stored name
// combines the sanitized email with a fresh UUID so repeat uploads never
// collide.
func (s *Storage) Save(file *multipart.FileHeader, email string) (string, error) {
	if file.Size > s.maxBytes {
		return "", &domain.PayloadTooLargeError{LimitBytes: s.maxBytes}
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == ".doc" {
		return "", &domain.ValidationError{Field: "resume", Message: "Legacy .doc format not supported. Please use .docx or .pdf"}
	}
	if !allowedExtensions[ext] {
		return "", &domain.ValidationError{Field: "resume", Message: fmt.Sprintf("unsupported file format: %s", ext)}
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%s_%s%s", sanitizeEmail(email), uuid.New(), ext)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create resume file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write resume file: %w", err)
	}

	s.logger.Info().Str("path", path).Int64("bytes", file.Size).Msg("resume stored")
	return path, nil
}

// Remove deletes a stored resume. Missing files are not an error.
func (s *Storage) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove resume file: %w", err)
	}
	return nil
}

func sanitizeEmail(email string) string {
	replacer := strings.NewReplacer("@", "_at_", ".", "_", "/", "_", "\\", "_")
	return replacer.Replace(email)
}
