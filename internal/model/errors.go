package model

import "fmt"

// ValidationError reports a rejected input parameter before simulation starts.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}
