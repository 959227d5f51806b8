package registry

import (
	"errors"
	"testing"
)

func TestError(t *testing.T) {
	t.Run("error with message", func(t *testing.T) {
		err := validationErr("package name cannot be empty")
		expected := "validation failed: package name cannot be empty"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("error without message", func(t *testing.T) {
		err := &Error{Kind: ErrOperation}
		if err.Error() != "operation failed" {
			t.Errorf("expected kind text, got %q", err.Error())
		}
	})

	t.Run("kind matching", func(t *testing.T) {
		err := wrapErr(ErrNotFound, nil, "project %q not found", "x")
		if !errors.Is(err, ErrNotFound) {
			t.Error("error should match its kind")
		}
		if errors.Is(err, ErrValidation) {
			t.Error("error should not match other kinds")
		}
	})

	t.Run("cause preserved", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := wrapErr(ErrOperation, cause, "failed to list packages")

		if !errors.Is(err, cause) {
			t.Error("cause should be reachable through Unwrap")
		}
		if !errors.Is(err, ErrOperation) {
			t.Error("kind should still match with a cause attached")
		}
	})

	t.Run("message includes cause", func(t *testing.T) {
		cause := errors.New("409 conflict")
		err := wrapErr(ErrOperation, cause, "upload failed")
		want := "operation failed: upload failed: 409 conflict"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})

	t.Run("not implemented", func(t *testing.T) {
		err := notImplemented("release creation")
		if !errors.Is(err, ErrNotImplemented) {
			t.Error("expected ErrNotImplemented kind")
		}
	})
}
