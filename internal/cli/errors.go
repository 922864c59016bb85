package cli

import (
	"errors"
	"fmt"
)

// Exit codes returned by the svccat binary.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitCatalogError = 2
)

// ExitError carries a specific process exit code for err.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps err to a process exit code: 0 for nil, the code of an ExitError
// anywhere in the chain, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
