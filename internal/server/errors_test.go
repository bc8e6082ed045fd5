package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/localrivet/lexsummary/internal/errortypes"
)

func TestToolError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  string
		wantLevel string
	}{
		{
			name:      "validation",
			err:       errortypes.ValidationError(errors.New("text is empty"), "text is required"),
			wantCode:  errortypes.CodeValidationError,
			wantLevel: "WARN",
		},
		{
			name:      "not found",
			err:       errortypes.NotFoundError(errors.New("missing"), "summary not found"),
			wantCode:  errortypes.CodeNotFound,
			wantLevel: "WARN",
		},
		{
			name:      "canceled",
			err:       context.Canceled,
			wantCode:  errortypes.CodeCanceled,
			wantLevel: "WARN",
		},
		{
			name:      "database",
			err:       errortypes.DatabaseError(errors.New("disk full"), "failed to store summary"),
			wantCode:  errortypes.CodeDatabaseError,
			wantLevel: "ERROR",
		},
		{
			name:      "plain error",
			err:       errors.New("boom"),
			wantCode:  errortypes.CodeUnknownError,
			wantLevel: "ERROR",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			resp := toolError(logger, test.err)
			if resp.Code != test.wantCode {
				t.Errorf("Expected code %s, got %s", test.wantCode, resp.Code)
			}
			if resp.Message != test.err.Error() {
				t.Errorf("Expected message %q, got %q", test.err.Error(), resp.Message)
			}
			if !strings.Contains(buf.String(), "level="+test.wantLevel) {
				t.Errorf("Expected %s log entry, got %q", test.wantLevel, buf.String())
			}
		})
	}
}
