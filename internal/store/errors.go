package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoUserWasFound is returned when no user matches the given ID.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrConfigNotFound is returned when a configuration key is not stored.
	ErrConfigNotFound = errors.New("config key was not found")

	// ErrFriendNotFound is returned when no friend entry matches the ID.
	ErrFriendNotFound = errors.New("friend was not found")

	// ErrObjectNotFound is returned when no object metadata matches the key.
	ErrObjectNotFound = errors.New("object was not found")

	// ErrObjectAlreadyExists is returned on an object key collision.
	ErrObjectAlreadyExists = errors.New("object already exists")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
)
