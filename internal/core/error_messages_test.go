package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"source fetch", &SourceFetchError{Sheet: "Заморозка", StatusCode: 503}, "SRC001"},
		{"transport failure", &SourceFetchError{Sheet: "Выпечка", Err: errors.New("dial tcp: refused")}, "SRC001"},
		{"product not found", fmt.Errorf("%w: KD-999", ErrProductNotFound), "CAT001"},
		{"unknown layout", fmt.Errorf("sheet X: %w", ErrUnknownLayout), "CAT002"},
		{"unsupported currency", fmt.Errorf("%w: \"EUR\"", ErrUnsupportedCurrency), "EXP002"},
		{"invalid parameter", fmt.Errorf("%w: limit", ErrInvalidParameter), "REQ001"},
		{"cancelled", context.Canceled, "REQ002"},
		{"deadline", context.DeadlineExceeded, "REQ003"},
		{"busy", ErrTooManyBuilds, "BLD001"},
		{"unknown", errors.New("something odd"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err); got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	if got := MapError(nil); got != (UserMessage{}) {
		t.Errorf("MapError(nil) = %+v, want zero value", got)
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrTooManyBuilds)
	want := "The catalog is busy (Code: BLD001). Please wait a moment and try again"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
}

func TestIsUserFacing(t *testing.T) {
	if IsUserFacing(nil) {
		t.Error("IsUserFacing(nil) = true")
	}
	if !IsUserFacing(ErrProductNotFound) {
		t.Error("IsUserFacing(ErrProductNotFound) = false")
	}
	if IsUserFacing(errors.New("boom")) {
		t.Error("IsUserFacing(boom) = true")
	}
}

func TestSourceFetchError_Unwrap(t *testing.T) {
	inner := errors.New("connection reset")
	err := fmt.Errorf("build: %w", &SourceFetchError{Sheet: "Выпечка", Err: inner})

	var sfe *SourceFetchError
	if !errors.As(err, &sfe) {
		t.Fatal("errors.As did not find SourceFetchError")
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is did not reach the wrapped error")
	}
}

func TestNewUserError(t *testing.T) {
	if NewUserError(nil) != nil {
		t.Error("NewUserError(nil) != nil")
	}
	ue := NewUserError(ErrProductNotFound)
	if ue.Error() != "Product not found" || !errors.Is(ue, ErrProductNotFound) {
		t.Errorf("NewUserError() = %v", ue)
	}
}
