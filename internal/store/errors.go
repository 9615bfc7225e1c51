package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrUserNotFound = errors.New("user was not found")

	// ErrVerificationNotFound is returned when no pending verification hash
	// exists for the user.
	ErrVerificationNotFound = errors.New("verification hash was not found")

	// ErrSessionExists is returned when inserting a session collides with
	// the UNIQUE(user_id, fingerprint) constraint: another request already
	// created the session for this device.
	ErrSessionExists = errors.New("session already exists for this fingerprint")

	// ErrSessionNotFound is returned when no session matches the lookup.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrBudgetNotFound is returned when a query or update targets a budget
	// (identified by budget_id and user_id) that does not exist in the
	// database.
	ErrBudgetNotFound = errors.New("budget was not found")

	// ErrLearnNotFound is returned when the user has no learning-progress
	// row yet.
	ErrLearnNotFound = errors.New("learning progress was not found")

	// ErrRetryableDB wraps driver errors classified as transient (connection
	// loss, deadlock rollback) so callers can retry without inspecting
	// PostgreSQL error codes themselves.
	ErrRetryableDB = errors.New("transient database error")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrAcquiringConnection is returned when a dedicated connection cannot
	// be checked out of the pool.
	ErrAcquiringConnection = errors.New("failed to acquire connection")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommittingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back at this
	// point.
	ErrCommittingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
