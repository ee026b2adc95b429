package types

import "strings"

// FeedbackSubmission carries the raw form values of one submission attempt,
// before any validation or trimming.
type FeedbackSubmission struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Priority string `form:"priority"`
	Title    string `form:"title"`
	Detail   string `form:"detail"`
}

// Validate runs every field check and returns the full ordered list of
// user-facing failure messages. All checks are evaluated so a single
// attempt can surface multiple errors at once; an empty slice means the
// submission is acceptable.
func (s *FeedbackSubmission) Validate() []string {
	var errs []string
	if s.Category == CategoryPlaceholder || !IsValidCategory(s.Category) {
		errs = append(errs, "Vui lòng chọn Danh mục phản hồi.")
	}
	if s.Priority == PriorityPlaceholder || !IsValidPriority(s.Priority) {
		errs = append(errs, "Vui lòng chọn Mức độ ưu tiên.")
	}
	if strings.TrimSpace(s.Title) == "" {
		errs = append(errs, "Vui lòng nhập Tiêu đề.")
	}
	if strings.TrimSpace(s.Detail) == "" {
		errs = append(errs, "Vui lòng nhập Nội dung chi tiết.")
	}
	return errs
}
