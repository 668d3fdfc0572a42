package models

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidReference = errors.New("invalid reference")
	ErrMalformedID      = errors.New("malformed identifier")
	ErrStoreFailure     = errors.New("store failure")
	ErrValidation       = errors.New("validation failed")
	ErrOrderProcessed   = errors.New("order already processed")
	ErrUnavailable      = errors.New("backend not configured")
)
