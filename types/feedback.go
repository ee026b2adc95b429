package types

import "time"

// Placeholder sentinels rendered as the first option of each select. A
// submission that still carries one of these has not made a choice.
const (
	CategoryPlaceholder = "-- Chọn danh mục --"
	PriorityPlaceholder = "-- Chọn mức độ --"
)

// TimestampLayout is the record timestamp format: ISO-8601 at second
// precision, local time.
const TimestampLayout = "2006-01-02T15:04:05"

// Categories is the closed set of selectable feedback categories.
var Categories = []string{
	"Công tác tổ chức, cán bộ",
	"Chế độ, chính sách",
	"Huấn luyện, sẵn sàng chiến đấu",
	"Cơ sở vật chất, trang bị",
	"Quan hệ nội bộ, kỷ luật",
	"Khác",
}

// Priorities is the closed set of priority levels, lowest first.
var Priorities = []string{
	"Bình thường",
	"Quan trọng",
	"Khẩn cấp",
}

var (
	categorySet = toSet(Categories)
	prioritySet = toSet(Priorities)
)

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// IsValidCategory reports whether v is a member of the category set.
func IsValidCategory(v string) bool { return categorySet[v] }

// IsValidPriority reports whether v is a member of the priority set.
func IsValidPriority(v string) bool { return prioritySet[v] }

// FeedbackRecord is one accepted submission as it is persisted to the log.
// Records are constructed once, after validation, and never mutated.
type FeedbackRecord struct {
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Priority  string `json:"priority"`
	Title     string `json:"title"`
	Images    string `json:"images"`
	Detail    string `json:"detail"`
}

// UploadedImage is the transient payload of one attached image. It lives
// for the duration of a single submission; only the stored filename
// survives inside the record.
type UploadedImage struct {
	Filename string
	Data     []byte
}

// NewTimestamp formats t in the record timestamp layout.
func NewTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
