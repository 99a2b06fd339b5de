package cli

import (
	"errors"
	"fmt"
	"io"

	"projectmgr/internal/store"
)

// ValidationError indicates bad user input.
type ValidationError struct {
	Field   string // the flag or field that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ErrOperationFailed is returned when the store reported a plain failure.
// The cause has already been logged.
var ErrOperationFailed = errors.New("operation failed")

// Report prints the outcome of a repository mutation and returns the error
// the command should exit with. Missing references and plain failures are
// rendered differently.
func Report(w io.Writer, ok bool, err error, success string) error {
	var nf *store.NotFoundError
	switch {
	case errors.As(err, &nf):
		fmt.Fprintln(w, Yellow(fmt.Sprintf("Not found: %s", nf.Error())))
		return err
	case err != nil:
		fmt.Fprintln(w, Red(fmt.Sprintf("Error: %v", err)))
		return err
	case !ok:
		fmt.Fprintln(w, Red("Failed: the store did not apply the change (see log for details)"))
		return ErrOperationFailed
	default:
		fmt.Fprintln(w, Green(success))
		return nil
	}
}
