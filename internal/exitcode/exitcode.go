// Package exitcode defines the process exit codes of the todo CLI.
package exitcode

// Exit codes. Scripts rely on these values.
const (
	Success      = 0 // command completed
	UserError    = 1 // bad arguments, unknown task number, invalid config
	AuthError    = 2 // missing or rejected credentials
	BackendError = 3 // task API unreachable, failing, or returning garbage
)

// Name returns a short label for code, used in logs.
func Name(code int) string {
	switch code {
	case Success:
		return "success"
	case UserError:
		return "user_error"
	case AuthError:
		return "auth_error"
	case BackendError:
		return "backend_error"
	default:
		return "unknown"
	}
}
