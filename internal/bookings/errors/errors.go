package errors

import "errors"

var (
	ErrDraftNotFound = errors.New("booking draft not found")

	ErrInvalidID = errors.New("invalid booking draft ID format")

	ErrSubmissionNotFound = errors.New("submission not found")

	ErrDuplicateSubmission = errors.New("submission already recorded")

	ErrAlreadySubmitted = errors.New("booking draft already submitted")
)
