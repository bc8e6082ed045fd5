package server

import (
	"log/slog"

	"github.com/localrivet/lexsummary/internal/errortypes"
)

// ErrorResponse is the error part shared by every tool response.
type ErrorResponse struct {
	Message string
	Code    string
}

// toolError logs err and converts it to the message and code reported to
// the client. Validation and not-found errors are expected and logged at
// warn level; everything else goes through errortypes.LogError.
func toolError(logger *slog.Logger, err error) ErrorResponse {
	code := errortypes.ErrorCode(err)

	switch code {
	case errortypes.CodeValidationError, errortypes.CodeNotFound, errortypes.CodeCanceled:
		logger.Warn("Tool call rejected", "code", code, "error", err)
	default:
		errortypes.LogError(logger, err)
	}

	return ErrorResponse{Message: err.Error(), Code: code}
}
