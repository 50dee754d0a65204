package pipeline

import "fmt"

// PanicError wraps a recovered panic from an analyze call, so one malformed
// sequence cannot take down the rest of the run.
type PanicError struct {
	Name      string
	Recovered any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("analyzing %q: panic: %v", e.Name, e.Recovered)
}
