package core

// Process exit codes.
const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
	// ExitCodeNotHandled reports a drop no handler accepted, so the caller
	// should run its default drop behavior.
	ExitCodeNotHandled = 3
	ExitCodeSIGINT     = 130
)

// ExitCodeName returns a human-readable name for an exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitCodeSuccess:
		return "success"
	case ExitCodeError:
		return "error"
	case ExitCodeNotHandled:
		return "not handled"
	case ExitCodeSIGINT:
		return "interrupted (SIGINT)"
	default:
		return "unknown"
	}
}
