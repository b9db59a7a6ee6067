package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known
// failure conditions. Callers should use [errors.Is] to match against these
// values.
var (
	// ErrSessionNotFound is returned when no session state has been
	// persisted on this device.
	ErrSessionNotFound = errors.New("local session not found")

	// ErrBankLinkNotFound is returned when the bank-link record is absent
	// or incomplete (one or more of its four keys missing).
	ErrBankLinkNotFound = errors.New("bank link record not found")

	// ErrKeyNotFound is returned by the low-level key-value accessor when
	// the requested key does not exist.
	ErrKeyNotFound = errors.New("key not found")
)

// Low-level database operation errors, returned (or wrapped) when a
// SQL-level operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a result
	// row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
