package repository

import (
	"context"

	"contour/pkg/model"
)

// SubmissionRepository is the idempotency ledger for forwarded bookings.
// Save reports ErrDuplicateSubmission when the key is already recorded.
type SubmissionRepository interface {
	Find(ctx context.Context, key string) (*model.Submission, error)
	Save(ctx context.Context, submission *model.Submission) error
}
