package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Error taxonomy for backend and catalog calls.
	//
	// ErrValidation is raised client-side before any request is sent.
	// ErrAuth carries the backend-provided message when available.
	// ErrNetwork marks requests that never completed.
	ErrValidation = fmt.Errorf("validation failed")
	ErrAuth       = fmt.Errorf("authentication failed")
	ErrNotFound   = fmt.Errorf("not found")
	ErrNetwork    = fmt.Errorf("request failed")

	// Session state errors
	ErrNotLoggedIn = fmt.Errorf("not logged in")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
