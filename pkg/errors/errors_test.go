package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "error without wrapped error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "resource not found",
			},
			expected: "resource not found",
		},
		{
			name: "error with wrapped error",
			appErr: &AppError{
				Code:    CodeRenderFailed,
				Message: "page rendering failed",
				Err:     errors.New("props did not serialize"),
			},
			expected: "page rendering failed: props did not serialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := &AppError{
		Code:    CodeInternalError,
		Message: "wrapped error",
		Err:     originalErr,
	}

	if unwrapped := appErr.Unwrap(); unwrapped != originalErr {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, originalErr)
	}

	appErrNoWrap := &AppError{
		Code:    CodeBadRequest,
		Message: "no wrap",
	}
	if unwrapped := appErrNoWrap.Unwrap(); unwrapped != nil {
		t.Errorf("AppError.Unwrap() = %v, want nil", unwrapped)
	}
}

func TestNew(t *testing.T) {
	appErr := New(CodeBadRequest, "bad request test", http.StatusBadRequest)

	if appErr.Code != CodeBadRequest {
		t.Errorf("New() Code = %v, want %v", appErr.Code, CodeBadRequest)
	}
	if appErr.Message != "bad request test" {
		t.Errorf("New() Message = %v, want %v", appErr.Message, "bad request test")
	}
	if appErr.Status != http.StatusBadRequest {
		t.Errorf("New() Status = %v, want %v", appErr.Status, http.StatusBadRequest)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("template missing placeholder")
	wrapped := Wrap(originalErr, ErrRenderFailed)

	if wrapped.Code != ErrRenderFailed.Code {
		t.Errorf("Wrap() Code = %v, want %v", wrapped.Code, ErrRenderFailed.Code)
	}
	if wrapped.Err != originalErr {
		t.Errorf("Wrap() Err = %v, want %v", wrapped.Err, originalErr)
	}
	if wrapped.Status != ErrRenderFailed.Status {
		t.Errorf("Wrap() Status = %v, want %v", wrapped.Status, ErrRenderFailed.Status)
	}
}

func TestAppError_WithMessage(t *testing.T) {
	original := ErrNotFound
	customMessage := "page Users/Show not found"

	withMsg := original.WithMessage(customMessage)

	if withMsg.Message != customMessage {
		t.Errorf("WithMessage() Message = %v, want %v", withMsg.Message, customMessage)
	}
	if withMsg.Code != original.Code {
		t.Errorf("WithMessage() Code = %v, want %v", withMsg.Code, original.Code)
	}
	if original.Message == customMessage {
		t.Error("Original error was modified")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		target   *AppError
		expected bool
	}{
		{
			name:     "same error",
			err:      ErrNotFound,
			target:   ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped error with same code",
			err:      Wrap(errors.New("original"), ErrNotFound),
			target:   ErrNotFound,
			expected: true,
		},
		{
			name:     "different error codes",
			err:      ErrBadRequest,
			target:   ErrNotFound,
			expected: false,
		},
		{
			name:     "non-AppError",
			err:      errors.New("plain error"),
			target:   ErrNotFound,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			target:   ErrNotFound,
			expected: false,
		},
		{
			name:     "wrapped in fmt.Errorf",
			err:      fmt.Errorf("wrapped: %w", ErrCSRFInvalid),
			target:   ErrCSRFInvalid,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.target); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"NotFound error", ErrNotFound, http.StatusNotFound},
		{"BadRequest error", ErrBadRequest, http.StatusBadRequest},
		{"Forbidden error", ErrForbidden, http.StatusForbidden},
		{"Conflict error", ErrConflict, http.StatusConflict},
		{"RenderFailed error", ErrRenderFailed, http.StatusInternalServerError},
		{"CSRFInvalid error", ErrCSRFInvalid, http.StatusForbidden},
		{"wrapped AppError", fmt.Errorf("wrapped: %w", ErrNotFound), http.StatusNotFound},
		{"plain error", errors.New("plain error"), http.StatusInternalServerError},
		{"nil error", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetStatus(tt.err); got != tt.expected {
				t.Errorf("GetStatus() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"ErrNotFound", ErrNotFound, CodeNotFound, http.StatusNotFound},
		{"ErrBadRequest", ErrBadRequest, CodeBadRequest, http.StatusBadRequest},
		{"ErrForbidden", ErrForbidden, CodeForbidden, http.StatusForbidden},
		{"ErrConflict", ErrConflict, CodeConflict, http.StatusConflict},
		{"ErrInternalError", ErrInternalError, CodeInternalError, http.StatusInternalServerError},
		{"ErrRenderFailed", ErrRenderFailed, CodeRenderFailed, http.StatusInternalServerError},
		{"ErrCSRFInvalid", ErrCSRFInvalid, CodeCSRFInvalid, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("%s Code = %v, want %v", tt.name, tt.err.Code, tt.code)
			}
			if tt.err.Status != tt.status {
				t.Errorf("%s Status = %v, want %v", tt.name, tt.err.Status, tt.status)
			}
		})
	}
}

func TestAppError_ErrorsAs(t *testing.T) {
	appErr := &AppError{
		Code:    CodeNotFound,
		Message: "test error",
		Status:  http.StatusNotFound,
	}

	var target *AppError
	if !errors.As(appErr, &target) {
		t.Error("errors.As should return true for *AppError")
	}

	if target.Code != appErr.Code {
		t.Errorf("errors.As target Code = %v, want %v", target.Code, appErr.Code)
	}
}
