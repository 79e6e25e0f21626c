package cmd

import (
	"errors"
	"fmt"

	"github.com/flowvibe/mcp-installer/internal/cmd/output"
)

// ErrReported marks a failure that was already written to the command output as a structured payload.
var ErrReported = errors.New("error already reported")

// handleFailure hands err to h.
// Text handlers return err unchanged; structured handlers write it and the result is marked with ErrReported.
func handleFailure[T any](h output.Handler[T], err error) error {
	if hErr := h.HandleError(err); hErr != nil {
		return hErr
	}

	return fmt.Errorf("%w: %w", ErrReported, err)
}
