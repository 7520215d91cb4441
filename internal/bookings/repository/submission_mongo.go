package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "contour/internal/bookings/errors"
	"contour/pkg/config"
	"contour/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	SubmissionsCollection = "Submissions"
)

type mongoSubmissionRepository struct {
	collection   *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewMongoSubmissionRepository relies on the TTL index created by cmd/migrate
// to expire old entries.
func NewMongoSubmissionRepository(cfg *config.Config) SubmissionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return newMongoSubmissionRepository(db.Collection(SubmissionsCollection), cfg.ReadTimeout, cfg.WriteTimeout)
}

func newMongoSubmissionRepository(coll *mongo.Collection, readTimeout, writeTimeout time.Duration) *mongoSubmissionRepository {
	return &mongoSubmissionRepository{
		collection:   coll,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// withTimeout never extends a deadline the caller already set.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoSubmissionRepository) Find(ctx context.Context, key string) (*model.Submission, error) {
	ctx, cancel := withTimeout(ctx, r.readTimeout)
	defer cancel()

	var sub model.Submission
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return &sub, nil
}

func (r *mongoSubmissionRepository) Save(ctx context.Context, submission *model.Submission) error {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	if _, err := r.collection.InsertOne(ctx, submission); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrDuplicateSubmission
		}
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}
