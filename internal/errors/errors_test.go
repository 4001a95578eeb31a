package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "user not found",
			},
			want: "user not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to process",
				Cause:   errors.New("underlying error"),
			},
			want: "failed to process: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantCode ErrorCode
	}{
		{"NotFound", NotFound("missing"), ErrCodeNotFound},
		{"Conflict", Conflict("exists"), ErrCodeConflict},
		{"Validation", Validation("bad input"), ErrCodeValidation},
		{"Unauthorized", Unauthorized("no token"), ErrCodeUnauthorized},
		{"Internal", Internal("boom"), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.wantCode)
			}
		})
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "email is required")
	if err.Code != ErrCodeValidation {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeValidation)
	}
	if err.Field != "email" {
		t.Errorf("Field = %v, want email", err.Field)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("pg: connection refused")
	err := Wrap(cause, ErrCodeInternal, "query users")

	if !errors.Is(err, cause) {
		t.Error("wrapped error should match cause with errors.Is")
	}
	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}

	if Wrap(nil, ErrCodeInternal, "no-op") != nil {
		t.Error("Wrap(nil, ...) should return nil")
	}
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"IsNotFound matches", NotFound("x"), IsNotFound, true},
		{"IsNotFound mismatched code", Conflict("x"), IsNotFound, false},
		{"IsConflict matches", Conflict("x"), IsConflict, true},
		{"IsValidation matches", Validation("x"), IsValidation, true},
		{"IsUnauthorized matches", Unauthorized("x"), IsUnauthorized, true},
		{"IsInternal matches", Internal("x"), IsInternal, true},
		{"plain error never matches", errors.New("x"), IsNotFound, false},
		{"wrapped AppError matches through fmt.Errorf", fmt.Errorf("outer: %w", NotFound("x")), IsNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("check = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(Unauthorized("x")); got != ErrCodeUnauthorized {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeUnauthorized)
	}
	if got := GetCode(errors.New("x")); got != "" {
		t.Errorf("GetCode on plain error = %v, want empty", got)
	}
}
