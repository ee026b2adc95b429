package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/dongbac/feedback-backend/errors"
	"github.com/dongbac/feedback-backend/internal/store"
	"github.com/dongbac/feedback-backend/logger"
	"github.com/dongbac/feedback-backend/types"
)

// Notifier is the outbound alerting receiver of the submission workflow.
type Notifier interface {
	Notify(ctx context.Context, rec *types.FeedbackRecord) error
	Enabled() bool
}

// SubmissionResult is the outcome of one accepted submission. Warning is
// non-empty when the record was persisted but the notification attempt
// failed; the submission is still a success.
type SubmissionResult struct {
	Record  *types.FeedbackRecord
	Warning string
}

// SubmissionService orchestrates one submission cycle:
// validate, persist uploads, append to the log, notify best-effort.
type SubmissionService struct {
	log      store.FeedbackLog
	files    store.FileStorage
	notifier Notifier
	now      func() time.Time
}

func NewSubmissionService(log store.FeedbackLog, files store.FileStorage, notifier Notifier) *SubmissionService {
	return &SubmissionService{
		log:      log,
		files:    files,
		notifier: notifier,
		now:      time.Now,
	}
}

// Submit runs the full workflow for one submission attempt.
//
// Validation failures return a ValidationError carrying every failed
// check; nothing is persisted, nothing is notified. A failure storing the
// uploads or appending to the log returns a PersistenceError; the
// submission is aborted and the notifier is never invoked. A notification
// failure is downgraded to Result.Warning and never fails the submission:
// persistence is authoritative, notification is advisory.
func (s *SubmissionService) Submit(ctx context.Context, sub *types.FeedbackSubmission, images []types.UploadedImage) (*SubmissionResult, error) {
	if msgs := sub.Validate(); len(msgs) > 0 {
		return nil, apperrors.ValidationList(msgs)
	}

	names, err := s.files.SaveBatch(ctx, images)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	rec := &types.FeedbackRecord{
		Timestamp: types.NewTimestamp(s.now()),
		Name:      strings.TrimSpace(sub.Name),
		Category:  sub.Category,
		Priority:  sub.Priority,
		Title:     strings.TrimSpace(sub.Title),
		Images:    strings.Join(names, ","),
		Detail:    strings.TrimSpace(sub.Detail),
	}

	if err := s.log.Append(ctx, rec); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	result := &SubmissionResult{Record: rec}
	if err := s.notifier.Notify(ctx, rec); err != nil {
		logger.GetLogger().Warnw("Notification failed after persist",
			"error", err,
			"priority", rec.Priority)
		var appErr *apperrors.AppError
		if stderrors.As(err, &appErr) && appErr.Detail != "" {
			result.Warning = fmt.Sprintf("%s: %s", appErr.Message, appErr.Detail)
		} else {
			result.Warning = fmt.Sprintf("Không gửi được email thông báo: %v", err)
		}
	}
	return result, nil
}
