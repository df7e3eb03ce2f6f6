package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"todo/internal/exitcode"
	"todo/internal/service"
)

// reportError prints err and returns the matching exit code.
func reportError(errOut io.Writer, err error) int {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	switch {
	case svcErr.Kind == service.KindNotFound:
		fmt.Fprintf(errOut, "error: %v\n", svcErr.Err)
		return exitcode.UserError
	case svcErr.StatusCode == http.StatusUnauthorized || svcErr.StatusCode == http.StatusForbidden:
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

// reportRefError prints a task reference parse error.
func reportRefError(errOut io.Writer, err error) int {
	if errors.Is(err, ErrTaskRefRequired) {
		fmt.Fprintln(errOut, "error: task reference required")
	} else {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.UserError
}
