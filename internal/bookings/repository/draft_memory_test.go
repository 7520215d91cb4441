package repository

import (
	"context"
	"testing"
	"time"

	bookingserrors "contour/internal/bookings/errors"
	"contour/pkg/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDraftRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryDraftRepository(time.Minute)

	draft := &model.BookingDraft{Name: "Dana"}
	require.NoError(t, repo.Create(ctx, draft))
	require.NotEmpty(t, draft.ID)
	assert.False(t, draft.CreatedAt.IsZero())

	got, err := repo.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana", got.Name)

	got.Email = "dana@example.com"
	require.NoError(t, repo.Save(ctx, got))

	again, err := repo.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", again.Email)

	require.NoError(t, repo.Delete(ctx, draft.ID))
	_, err = repo.Get(ctx, draft.ID)
	assert.ErrorIs(t, err, bookingserrors.ErrDraftNotFound)
}

func TestMemoryDraftRepository_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryDraftRepository(time.Minute)

	draft := &model.BookingDraft{}
	require.NoError(t, repo.Create(ctx, draft))

	got, err := repo.Get(ctx, draft.ID)
	require.NoError(t, err)
	got.Name = "changed without saving"

	fresh, err := repo.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Empty(t, fresh.Name)
}

func TestMemoryDraftRepository_Errors(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryDraftRepository(time.Minute)

	_, err := repo.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, bookingserrors.ErrInvalidID)

	_, err = repo.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, bookingserrors.ErrDraftNotFound)

	err = repo.Save(ctx, &model.BookingDraft{ID: uuid.NewString()})
	assert.ErrorIs(t, err, bookingserrors.ErrDraftNotFound)

	err = repo.Delete(ctx, uuid.NewString())
	assert.ErrorIs(t, err, bookingserrors.ErrDraftNotFound)
}

func TestMemoryDraftRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryDraftRepository(20 * time.Millisecond)

	draft := &model.BookingDraft{}
	require.NoError(t, repo.Create(ctx, draft))

	time.Sleep(40 * time.Millisecond)
	_, err := repo.Get(ctx, draft.ID)
	assert.ErrorIs(t, err, bookingserrors.ErrDraftNotFound)
}

func TestMemorySubmissionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySubmissionRepository(time.Minute)

	_, err := repo.Find(ctx, "key-1")
	assert.ErrorIs(t, err, bookingserrors.ErrSubmissionNotFound)

	sub := &model.Submission{Key: "key-1", DraftID: "d-1", AppointmentID: "apt-1"}
	require.NoError(t, repo.Save(ctx, sub))
	assert.False(t, sub.CreatedAt.IsZero())

	got, err := repo.Find(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, "apt-1", got.AppointmentID)

	err = repo.Save(ctx, &model.Submission{Key: "key-1"})
	assert.ErrorIs(t, err, bookingserrors.ErrDuplicateSubmission)
}
