// Package store defines the storage interfaces of the feedback service.
package store

import (
	"context"

	"github.com/dongbac/feedback-backend/types"
)

// FeedbackLog is the append-only durable store of accepted records.
// Append writes exactly one record; a nil return means the row has been
// flushed to disk. Implementations must serialize concurrent appends from
// within the process. Records are never updated or deleted.
type FeedbackLog interface {
	Append(ctx context.Context, rec *types.FeedbackRecord) error
	ReadAll(ctx context.Context) ([]types.FeedbackRecord, error)
}

// FileStorage persists the images attached to one submission.
// SaveBatch stores every image of the batch under a name unique within the
// invocation and returns the assigned names in input order. The batch is
// all-or-nothing: on failure, files already written for this batch are
// removed and an error is returned, so the log never references files that
// do not exist. An empty batch returns an empty slice and no error.
type FileStorage interface {
	SaveBatch(ctx context.Context, images []types.UploadedImage) ([]string, error)
}
