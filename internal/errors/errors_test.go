package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNoPlatformsDetected, ExitUser),
			want: "no supported platforms detected",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("loading config: %w", ErrInvalidConfig), ExitUser),
			want: "loading config: invalid configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
		{
			name: "success code with error",
			err:  NewExitError(errors.New("unexpected"), ExitSuccess),
			want: "unexpected",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	tests := []struct {
		name       string
		err        *ExitError
		wantTarget error
		wantIs     bool
	}{
		{
			name:       "unwrap to sentinel error",
			err:        NewExitError(ErrNoPlatformsDetected, ExitUser),
			wantTarget: ErrNoPlatformsDetected,
			wantIs:     true,
		},
		{
			name:       "unwrap through wrapped error",
			err:        NewExitError(fmt.Errorf("resolving path: %w", ErrUnknownPlatform), ExitUser),
			wantTarget: ErrUnknownPlatform,
			wantIs:     true,
		},
		{
			name:       "no match for different sentinel",
			err:        NewExitError(ErrUnknownPlatform, ExitUser),
			wantTarget: ErrUnknownScope,
			wantIs:     false,
		},
		{
			name:       "nil underlying error",
			err:        NewExitError(nil, ExitUser),
			wantTarget: ErrUnknownPlatform,
			wantIs:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.wantTarget); got != tt.wantIs {
				t.Errorf("errors.Is() = %v, want %v", got, tt.wantIs)
			}
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrNoPlatformsDetected", ErrNoPlatformsDetected, "no supported platforms detected"},
		{"ErrUnknownPlatform", ErrUnknownPlatform, "unknown platform"},
		{"ErrUnknownScope", ErrUnknownScope, "unknown scope"},
		{"ErrAllPlatformsFailed", ErrAllPlatformsFailed, "all platforms failed"},
		{"ErrInvalidConfig", ErrInvalidConfig, "invalid configuration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("error message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"direct ExitError", NewExitError(ErrAllPlatformsFailed, ExitUser), ExitUser},
		{"wrapped ExitError", fmt.Errorf("running setup: %w", NewExitError(ErrInvalidConfig, ExitSystem)), ExitSystem},
		{"plain error defaults to user", errors.New("boom"), ExitUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewConstructors(t *testing.T) {
	t.Run("NewUserError", func(t *testing.T) {
		err := errors.New("user error")
		e := NewUserError(err, "check input")
		if e.Code != ExitUser {
			t.Errorf("Code = %d, want %d", e.Code, ExitUser)
		}
		if e.Suggestion != "check input" {
			t.Errorf("Suggestion = %q, want 'check input'", e.Suggestion)
		}
	})

	t.Run("NewSystemError", func(t *testing.T) {
		err := errors.New("system error")
		e := NewSystemError(err, "check logs")
		if e.Code != ExitSystem {
			t.Errorf("Code = %d, want %d", e.Code, ExitSystem)
		}
		if e.Suggestion != "check logs" {
			t.Errorf("Suggestion = %q, want 'check logs'", e.Suggestion)
		}
	})

	t.Run("NewConfigError", func(t *testing.T) {
		err := errors.New("config error")
		e := NewConfigError(err)
		if e.Code != ExitUser {
			t.Errorf("Code = %d, want %d", e.Code, ExitUser)
		}
		if e.Suggestion != "Run: spectator doctor" {
			t.Errorf("Suggestion = %q, want 'Run: spectator doctor'", e.Suggestion)
		}
	})
}

func TestErrorWrappingChain(t *testing.T) {
	baseErr := ErrUnknownPlatform
	wrappedOnce := fmt.Errorf("resolving config path: %w", baseErr)
	wrappedTwice := fmt.Errorf("configuring 'cursor': %w", wrappedOnce)
	exitErr := NewExitError(wrappedTwice, ExitUser)

	if !errors.Is(exitErr, ErrUnknownPlatform) {
		t.Error("errors.Is() should find ErrUnknownPlatform through wrapping chain")
	}

	var target *ExitError
	if !errors.As(exitErr, &target) {
		t.Error("errors.As() should find ExitError")
	}
	if target.Code != ExitUser {
		t.Errorf("ExitError.Code = %d, want %d", target.Code, ExitUser)
	}

	want := "configuring 'cursor': resolving config path: unknown platform"
	if got := exitErr.Error(); got != want {
		t.Errorf("ExitError.Error() = %q, want %q", got, want)
	}
}
