package csvlog

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dongbac/feedback-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(title string) *types.FeedbackRecord {
	return &types.FeedbackRecord{
		Timestamp: types.NewTimestamp(time.Now()),
		Name:      "Nguyễn Văn A",
		Category:  "Chế độ, chính sách",
		Priority:  "Khẩn cấp",
		Title:     title,
		Images:    "",
		Detail:    "Đơn vị thiếu mũ bảo hiểm.",
	}
}

func TestAppendCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	s := New(path)

	err := s.Append(context.Background(), testRecord("Thiếu trang bị"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "timestamp,name,category,priority,title,images,detail", lines[0])
}

func TestAppendWritesHeaderOnlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	s := New(path)

	require.NoError(t, s.Append(context.Background(), testRecord("one")))
	require.NoError(t, s.Append(context.Background(), testRecord("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, 1, strings.Count(string(data), "timestamp,name,category"))
}

func TestAppendCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "feedback.csv")
	s := New(path)

	require.NoError(t, s.Append(context.Background(), testRecord("nested")))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	s := New(path)

	want := []*types.FeedbackRecord{
		testRecord("first"),
		{
			Timestamp: "2026-08-31T09:15:00",
			Name:      "",
			Category:  "Khác",
			Priority:  "Bình thường",
			Title:     `Tiêu đề có "ngoặc kép", và dấu phẩy`,
			Images:    "20260831_091500_0.jpg,20260831_091500_1.png",
			Detail:    "Dòng một\nDòng hai",
		},
		testRecord("third"),
	}
	for _, rec := range want {
		require.NoError(t, s.Append(context.Background(), rec))
	}

	got, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, *want[i], got[i])
	}
}

func TestReadAllMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "absent.csv"))

	records, err := s.ReadAll(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, records)
}

func TestTimestampsNonDecreasing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	s := New(path)

	for i := 0; i < 5; i++ {
		rec := testRecord("ordered")
		rec.Timestamp = types.NewTimestamp(time.Now())
		require.NoError(t, s.Append(context.Background(), rec))
	}

	records, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	for i := 1; i < len(records); i++ {
		assert.LessOrEqual(t, records[i-1].Timestamp, records[i].Timestamp)
	}
}

func TestConcurrentAppendsDoNotInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	s := New(path)

	const writers = 16
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_ = s.Append(context.Background(), testRecord("concurrent"))
		}()
	}
	wg.Wait()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	// One header plus one intact row per writer.
	assert.Len(t, rows, writers+1)
	for _, row := range rows {
		assert.Len(t, row, 7)
	}
}

func TestAppendCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	s := New(path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Append(ctx, testRecord("cancelled"))
	assert.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
