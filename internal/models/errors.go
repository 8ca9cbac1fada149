package models

import "errors"

// Common errors
var (
	// ErrNotFound is returned when a record or preview is absent
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidSite is returned when a site identifier fails normalization
	ErrInvalidSite = errors.New("invalid site identifier")

	// ErrEmptyTitle is returned when an article key is built without a title
	ErrEmptyTitle = errors.New("article title is empty")
)
