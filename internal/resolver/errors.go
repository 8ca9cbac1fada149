package resolver

import "errors"

// Error types for the resolver package.
var (
	// ErrNoRandomTitle is returned when the title provider fails for good
	ErrNoRandomTitle = errors.New("no random title available")

	// ErrContentUnavailable is returned when article content cannot be fetched or stored
	ErrContentUnavailable = errors.New("article content unavailable")

	// ErrInvalidConfiguration is returned when a required collaborator is nil
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
