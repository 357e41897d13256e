// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task id, invalid priority).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// ConfigError shares its code with AuthError.
	ConfigError = AuthError

	// BackendError indicates a database, API or network error.
	BackendError = 3
)
