// Package imagestore persists uploaded product images and returns the public
// URL they are served from. Two backends exist: the local filesystem and AWS
// S3, selected by configuration at startup.
package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store saves image files and returns their public URL.
type Store interface {
	// Save writes the image under a collision-free name derived from
	// filename and returns the URL it will be served from.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// uniqueName keeps the original extension but replaces the rest of the name,
// so uploads can never overwrite each other.
func uniqueName(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return uuid.NewString() + ext
}

// fileStore implements Store on the local filesystem.
type fileStore struct {
	dir     string
	baseURL string
	logger  zerolog.Logger
}

// NewFileStore creates a filesystem-backed image store rooted at dir. Saved
// files are served under baseURL.
func NewFileStore(dir, baseURL string, logger zerolog.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", dir, err)
	}

	return &fileStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With().Str("component", "image-store").Logger(),
	}, nil
}

// Save writes the image to disk and returns its public URL.
func (s *fileStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	name := uniqueName(filename)
	dest := filepath.Join(s.dir, name)

	f, err := os.Create(dest)
	if err != nil {
		s.logger.Error().Err(err).Str("path", dest).Msg("failed to create image file")
		return "", fmt.Errorf("failed to create image file %s: %w", dest, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dest)
		s.logger.Error().Err(err).Str("path", dest).Msg("failed to write image file")
		return "", fmt.Errorf("failed to write image file %s: %w", dest, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close image file %s: %w", dest, err)
	}

	url := s.baseURL + "/" + name
	s.logger.Debug().Str("url", url).Msg("image stored")
	return url, nil
}
