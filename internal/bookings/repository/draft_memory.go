package repository

import (
	"context"
	"time"

	bookingserrors "contour/internal/bookings/errors"
	"contour/pkg/model"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type memoryDraftRepository struct {
	cache *cache.Cache
}

func NewMemoryDraftRepository(ttl time.Duration) DraftRepository {
	return &memoryDraftRepository{
		cache: cache.New(ttl, ttl/2),
	}
}

func (r *memoryDraftRepository) Create(_ context.Context, draft *model.BookingDraft) error {
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	if err := r.cache.Add(draft.ID, *draft, cache.DefaultExpiration); err != nil {
		return err
	}
	return nil
}

func (r *memoryDraftRepository) Get(_ context.Context, id string) (*model.BookingDraft, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, bookingserrors.ErrInvalidID
	}
	v, ok := r.cache.Get(id)
	if !ok {
		return nil, bookingserrors.ErrDraftNotFound
	}
	draft := v.(model.BookingDraft)
	return &draft, nil
}

func (r *memoryDraftRepository) Save(_ context.Context, draft *model.BookingDraft) error {
	if _, ok := r.cache.Get(draft.ID); !ok {
		return bookingserrors.ErrDraftNotFound
	}
	r.cache.SetDefault(draft.ID, *draft)
	return nil
}

func (r *memoryDraftRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.cache.Get(id); !ok {
		return bookingserrors.ErrDraftNotFound
	}
	r.cache.Delete(id)
	return nil
}
