package repository

import (
	"context"
	"time"

	bookingserrors "contour/internal/bookings/errors"
	"contour/pkg/model"

	"github.com/patrickmn/go-cache"
)

type memorySubmissionRepository struct {
	cache *cache.Cache
}

func NewMemorySubmissionRepository(ttl time.Duration) SubmissionRepository {
	return &memorySubmissionRepository{
		cache: cache.New(ttl, ttl/2),
	}
}

func (r *memorySubmissionRepository) Find(_ context.Context, key string) (*model.Submission, error) {
	v, ok := r.cache.Get(key)
	if !ok {
		return nil, bookingserrors.ErrSubmissionNotFound
	}
	sub := v.(model.Submission)
	return &sub, nil
}

func (r *memorySubmissionRepository) Save(_ context.Context, submission *model.Submission) error {
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}
	if err := r.cache.Add(submission.Key, *submission, cache.DefaultExpiration); err != nil {
		return bookingserrors.ErrDuplicateSubmission
	}
	return nil
}
