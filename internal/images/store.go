package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"foodbot/pkg/logger"
)

// Store downloads product photos into a local directory and builds the
// public URLs under which the HTTP layer serves them.
type Store struct {
	dir     string
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

// NewStore ensures the image directory exists.
func NewStore(dir, publicBaseURL string, log *logger.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     log.WithComponent("images"),
	}, nil
}

// Dir returns the local directory used as the static file root.
func (s *Store) Dir() string {
	return s.dir
}

// Download fetches a photo from fileURL and saves it under a unique name
// derived from the telegram file id. It returns the public URL of the
// stored image. The file is written to a temp name and renamed, so a
// half-downloaded image is never served.
func (s *Store) Download(ctx context.Context, fileURL, fileID string) (string, error) {
	name := fmt.Sprintf("%d_%s.jpg", time.Now().UnixMilli(), sanitize(fileID))
	path := filepath.Join(s.dir, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download image: unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(s.dir, "download-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}

	s.log.Info("image saved", "path", path)
	return s.baseURL + "/images/" + name, nil
}

// sanitize keeps file ids safe for use in a file name.
func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, id)
}
