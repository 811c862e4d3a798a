// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty title, bad effort).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// StoreError indicates the artifact could not be rewritten
	// (missing data boundary, filesystem failure) or a remote call failed.
	StoreError = 3

	// NotImplemented indicates a command that has no effect yet.
	NotImplemented = 4
)
