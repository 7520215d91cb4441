package repository

import (
	"context"

	"contour/pkg/model"
)

// DraftRepository keeps in-progress booking drafts for the length of a form
// session. Entries expire after the configured TTL; every Save restarts it.
type DraftRepository interface {
	Create(ctx context.Context, draft *model.BookingDraft) error
	Get(ctx context.Context, id string) (*model.BookingDraft, error)
	Save(ctx context.Context, draft *model.BookingDraft) error
	Delete(ctx context.Context, id string) error
}
