// Package uploads stores submitted images on the local filesystem.
package uploads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dongbac/feedback-backend/internal/store"
	"github.com/dongbac/feedback-backend/types"
)

// batchTimestampLayout names stored files; one timestamp is shared by the
// whole batch and the position index keeps names unique within it.
const batchTimestampLayout = "20060102_150405"

// defaultExt is used when the original filename carries no extension.
const defaultExt = ".jpg"

// Ensure LocalFileStorage implements store.FileStorage
var _ store.FileStorage = (*LocalFileStorage)(nil)

// LocalFileStorage writes image batches into a single base directory.
type LocalFileStorage struct {
	basePath string
	now      func() time.Time
}

// NewLocalFileStorage creates a local upload store rooted at basePath.
// The directory is created on demand.
func NewLocalFileStorage(basePath string) *LocalFileStorage {
	return &LocalFileStorage{basePath: basePath, now: time.Now}
}

// containedPath resolves the full path and verifies it stays within
// basePath. Returns an error if the path escapes the storage directory.
func (s *LocalFileStorage) containedPath(name string) (string, error) {
	fullPath := filepath.Join(s.basePath, name)
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}
	absFull, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve full path: %w", err)
	}
	if !strings.HasPrefix(absFull, absBase+string(filepath.Separator)) && absFull != absBase {
		return "", fmt.Errorf("path traversal detected")
	}
	return absFull, nil
}

// SaveBatch stores every image under <timestamp>_<index><ext> with one
// shared batch timestamp, preserving the original extension (.jpg when
// absent), and returns the assigned names in input order. The batch is
// all-or-nothing: a failed write removes the files already written for
// this batch before returning the error.
func (s *LocalFileStorage) SaveBatch(ctx context.Context, images []types.UploadedImage) ([]string, error) {
	if len(images) == 0 {
		return nil, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	ts := s.now().Format(batchTimestampLayout)
	saved := make([]string, 0, len(images))
	for i, img := range images {
		ext := filepath.Ext(img.Filename)
		if ext == "" {
			ext = defaultExt
		}
		name := fmt.Sprintf("%s_%d%s", ts, i, ext)

		fullPath, err := s.containedPath(name)
		if err != nil {
			s.removeBatch(saved)
			return nil, err
		}
		if err := os.WriteFile(fullPath, img.Data, 0644); err != nil {
			s.removeBatch(saved)
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
		saved = append(saved, name)
	}
	return saved, nil
}

// removeBatch deletes the partial output of a failed batch.
func (s *LocalFileStorage) removeBatch(names []string) {
	for _, name := range names {
		if fullPath, err := s.containedPath(name); err == nil {
			_ = os.Remove(fullPath)
		}
	}
}
