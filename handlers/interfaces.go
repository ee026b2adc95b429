package handlers

import (
	"context"

	"github.com/dongbac/feedback-backend/services"
	"github.com/dongbac/feedback-backend/types"
)

// FeedbackSubmitter defines the submission service methods needed by handlers.
type FeedbackSubmitter interface {
	Submit(ctx context.Context, submission *types.FeedbackSubmission, images []types.UploadedImage) (*services.SubmissionResult, error)
}
