package models

import "errors"

// Domain specific errors for the discovery engine.
var (
	ErrNotFound            = errors.New("destination could not be resolved")
	ErrProviderUnavailable = errors.New("places provider unavailable")
	ErrNotInPool           = errors.New("place not present in pool")
	ErrInvalidCategory     = errors.New("unknown discovery category")
	ErrSessionNotFound     = errors.New("discovery session not found")
)
