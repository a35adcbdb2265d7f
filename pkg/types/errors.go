// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// StageError wraps a failure from one pipeline stage so callers can
// tell which collaborator failed without parsing error strings.
type StageError struct {
	// Stage names the failing stage: "fetch", "document", "recognition",
	// "structuring", "store".
	Stage string

	// Err is the underlying failure.
	Err error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
