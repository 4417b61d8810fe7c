package domain

import "errors"

var (
	ErrTextTooShort   = errors.New("review text too short")
	ErrTextTooLong    = errors.New("review text too long")
	ErrReviewNotFound = errors.New("review not found")
)
