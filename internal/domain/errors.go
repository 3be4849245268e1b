package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidRequest      = errors.New("invalid render request")
	ErrInvalidRevision     = errors.New("invalid revision request")
	ErrProviderFailure     = errors.New("provider failure")
	ErrPersistenceDisabled = errors.New("persistence disabled")
)
