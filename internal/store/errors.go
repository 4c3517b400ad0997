package store

import "errors"

// Write-path failures surface to the caller as error values; the UI shows
// err.Error(). Read-path failures never leave a store.
var (
	// ErrInvalidCredentials maps an HTTP 401 from the login endpoint.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidResponse marks a well-formed response missing an expected
	// field, such as a login body without a numeric userId.
	ErrInvalidResponse = errors.New("server returned invalid data")

	// ErrNotLoggedIn is returned by write operations that need a current
	// user when no session is persisted.
	ErrNotLoggedIn = errors.New("not logged in")
)
