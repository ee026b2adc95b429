// Package csvlog implements the append-only feedback log as a CSV file.
package csvlog

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dongbac/feedback-backend/internal/store"
	"github.com/dongbac/feedback-backend/types"
)

// header is the fixed seven-column field order. It is written once, when
// the file is created, and never changes across restarts.
var header = []string{"timestamp", "name", "category", "priority", "title", "images", "detail"}

// Ensure Store implements store.FeedbackLog
var _ store.FeedbackLog = (*Store)(nil)

// Store appends feedback records to a single CSV file. A mutex serializes
// appends so concurrent submissions cannot interleave partial rows; there
// is no cross-process locking.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a feedback log backed by the CSV file at path. The file is
// created lazily on first append.
func New(path string) *Store {
	return &Store{path: path}
}

// Append writes rec as one CSV row, creating the file (and its parent
// directory) with a header row first if it does not exist yet. The row is
// flushed and synced before returning.
func (s *Store) Append(ctx context.Context, rec *types.FeedbackRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	_, statErr := os.Stat(s.path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open feedback log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to write log header: %w", err)
		}
	}
	if err := w.Write(recordToRow(rec)); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush record: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync feedback log: %w", err)
	}
	return nil
}

// ReadAll reads the log back into records. It exists for verification and
// operational inspection; there is no user-facing query surface.
func (s *Store) ReadAll(ctx context.Context) ([]types.FeedbackRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open feedback log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read feedback log: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]types.FeedbackRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("malformed log row: got %d columns, want %d", len(row), len(header))
		}
		records = append(records, rowToRecord(row))
	}
	return records, nil
}

func recordToRow(rec *types.FeedbackRecord) []string {
	return []string{
		rec.Timestamp,
		rec.Name,
		rec.Category,
		rec.Priority,
		rec.Title,
		rec.Images,
		rec.Detail,
	}
}

func rowToRecord(row []string) types.FeedbackRecord {
	return types.FeedbackRecord{
		Timestamp: row[0],
		Name:      row[1],
		Category:  row[2],
		Priority:  row[3],
		Title:     row[4],
		Images:    row[5],
		Detail:    row[6],
	}
}
