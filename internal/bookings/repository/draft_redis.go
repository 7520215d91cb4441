package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bookingserrors "contour/internal/bookings/errors"
	"contour/pkg/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const draftKeyPrefix = "contour:draft:"

type redisDraftRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisDraftRepository stores drafts as JSON strings so several service
// replicas can serve the same form session.
func NewRedisDraftRepository(rdb *redis.Client, ttl time.Duration) DraftRepository {
	return &redisDraftRepository{
		rdb: rdb,
		ttl: ttl,
	}
}

func draftKey(id string) string {
	return draftKeyPrefix + id
}

func (r *redisDraftRepository) Create(ctx context.Context, draft *model.BookingDraft) error {
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	ok, err := r.rdb.SetNX(ctx, draftKey(draft.ID), data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}
	if !ok {
		return fmt.Errorf("draft %s already exists", draft.ID)
	}
	return nil
}

func (r *redisDraftRepository) Get(ctx context.Context, id string) (*model.BookingDraft, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, bookingserrors.ErrInvalidID
	}

	data, err := r.rdb.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, bookingserrors.ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft model.BookingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &draft, nil
}

func (r *redisDraftRepository) Save(ctx context.Context, draft *model.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	// XX: only overwrite a draft that has not expired.
	ok, err := r.rdb.SetXX(ctx, draftKey(draft.ID), data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	if !ok {
		return bookingserrors.ErrDraftNotFound
	}
	return nil
}

func (r *redisDraftRepository) Delete(ctx context.Context, id string) error {
	n, err := r.rdb.Del(ctx, draftKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if n == 0 {
		return bookingserrors.ErrDraftNotFound
	}
	return nil
}
