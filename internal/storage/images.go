// Package storage provides file-based storage for recipe images.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// maxImageBytes caps a single downloaded image.
const maxImageBytes = 10 << 20

// ImageStore keeps one image file per recipe under a base directory.
type ImageStore struct {
	basePath   string
	httpClient *http.Client
}

// NewImageStore creates a new ImageStore and ensures the base directory
// exists.
func NewImageStore(basePath string) (*ImageStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &ImageStore{
		basePath:   basePath,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func (s *ImageStore) pathFor(recipeID int64, ext string) string {
	return filepath.Join(s.basePath, fmt.Sprintf("recipe_%d%s", recipeID, ext))
}

// SaveFromURL downloads the image and stores it for the recipe, replacing
// any previous image. It returns the stored file path.
func (s *ImageStore) SaveFromURL(ctx context.Context, recipeID int64, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	if err := s.Remove(recipeID); err != nil {
		return "", err
	}

	path := s.pathFor(recipeID, extensionFor(resp.Header.Get("Content-Type")))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, io.LimitReader(resp.Body, maxImageBytes)); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return path, nil
}

// Path returns the stored image path for the recipe, or "" when none exists.
func (s *ImageStore) Path(recipeID int64) string {
	matches, err := filepath.Glob(s.pathFor(recipeID, ".*"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	return matches[0]
}

// Remove deletes any stored image files for the recipe.
func (s *ImageStore) Remove(recipeID int64) error {
	matches, err := filepath.Glob(s.pathFor(recipeID, ".*"))
	if err != nil {
		return fmt.Errorf("failed to glob image files: %w", err)
	}
	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return fmt.Errorf("failed to remove image file %s: %w", match, err)
		}
	}
	return nil
}
