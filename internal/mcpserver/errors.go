package mcpserver

import (
	"encoding/json"
	stdErrors "errors"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/flowvibe/mcp-installer/internal/errors"
)

// JSON-RPC error codes reported in tool error envelopes.
const (
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInternalError  = -32603
)

// errorEnvelope is the body of a failed tool result.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// codeFor maps application domain errors to JSON-RPC error codes.
//
// This function is the central place where domain errors from internal/errors are converted to tool errors.
// When adding new errors to internal/errors/errors.go, you MUST add them here to prevent them from falling
// through to the default case which reports an internal error.
//
// NOTE: Keep this function in sync with internal/errors/errors.go.
//
// Mapping guidelines:
//   - -32600: the caller asked for something that cannot be done as asked
//   - -32601: the tool does not exist
//   - -32603: the work itself failed (default case)
//
// Don't forget to:
// 1. Add test cases to TestCodeFor (internal/mcpserver/errors_test.go)
// 2. Update the documentation in internal/errors/errors.go
func codeFor(logger hclog.Logger, err error) int {
	switch {
	case stdErrors.Is(err, errors.ErrBadRequest),
		stdErrors.Is(err, errors.ErrInvalidURL),
		stdErrors.Is(err, errors.ErrServerNotFound),
		stdErrors.Is(err, errors.ErrSourceUnknown),
		stdErrors.Is(err, errors.ErrTokenRequired):
		return CodeInvalidRequest
	case stdErrors.Is(err, errors.ErrUnknownTool):
		return CodeMethodNotFound
	case stdErrors.Is(err, errors.ErrNoRuntime),
		stdErrors.Is(err, errors.ErrEntryPointNotFound),
		stdErrors.Is(err, errors.ErrDependencyInstallFailed),
		stdErrors.Is(err, errors.ErrFetchFailed),
		stdErrors.Is(err, errors.ErrSearchFailed):
		logger.Error("Tool operation failed", "error", err)
		return CodeInternalError
	default:
		logger.Error("Unexpected error running tool", "error", err)
		return CodeInternalError
	}
}

// errorResult wraps err in an error envelope and returns it as a failed tool result.
func errorResult(logger hclog.Logger, err error) *mcp.CallToolResult {
	body, mErr := json.Marshal(errorEnvelope{
		Error: errorBody{
			Code:    codeFor(logger, err),
			Message: err.Error(),
		},
	})
	if mErr != nil {
		return mcp.NewToolResultError(err.Error())
	}

	return mcp.NewToolResultError(string(body))
}
