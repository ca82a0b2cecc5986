package faults

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(Validation("bad input")); got != KindValidation {
		t.Errorf("KindOf(Validation) = %v", got)
	}
	if got := KindOf(Transient("down", nil)); got != KindTransient {
		t.Errorf("KindOf(Transient) = %v", got)
	}
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Errorf("KindOf(plain error) = %v, want internal", got)
	}

	// wrapped taxonomy errors still classify
	wrapped := fmt.Errorf("dispatch: %w", Validation("missing field"))
	if !IsValidation(wrapped) {
		t.Error("IsValidation should see through wrapping")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Transient("compute unit unreachable", cause)
	if !errors.Is(err, cause) {
		t.Error("cause should survive Unwrap")
	}
	if err.Error() != "compute unit unreachable" {
		t.Errorf("Error() = %q", err.Error())
	}
}

type timeoutNetError struct{ timeout bool }

func (e *timeoutNetError) Error() string   { return "net failure" }
func (e *timeoutNetError) Timeout() bool   { return e.timeout }
func (e *timeoutNetError) Temporary() bool { return false }

var _ net.Error = (*timeoutNetError)(nil)

func TestClassifyTransport(t *testing.T) {
	if got := ClassifyTransport(nil); got != nil {
		t.Fatalf("ClassifyTransport(nil) = %v, want nil", got)
	}

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"net timeout", &timeoutNetError{timeout: true}, KindTransient},
		{"net refused", &timeoutNetError{}, KindTransient},
		{"url error", &url.Error{Op: "Post", URL: "http://localhost:9000", Err: errors.New("connection refused")}, KindTransient},
		{"deadline", context.DeadlineExceeded, KindTransient},
		{"wrapped deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), KindTransient},
		{"canceled", context.Canceled, KindInternal},
		{"other", errors.New("mystery"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyTransport(tt.err)
			if got.Kind != tt.want {
				t.Errorf("kind = %v, want %v", got.Kind, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Error("original cause should be preserved")
			}
		})
	}
}
