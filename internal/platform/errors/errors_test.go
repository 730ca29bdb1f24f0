package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	apperrors "classsign/internal/platform/errors"
)

func TestRemoteErrorUnwrapsToKind(t *testing.T) {
	t.Parallel()
	fetch := fmt.Errorf("fetch 20250924: %w", apperrors.NewRemoteError("schedule", "no permission"))
	if !errors.Is(fetch, apperrors.ErrRemote) || errors.Is(fetch, apperrors.ErrAuth) {
		t.Fatalf("expected remote kind, got %v", fetch)
	}
	var remote *apperrors.RemoteError
	if !errors.As(fetch, &remote) || remote.Message != "no permission" {
		t.Fatalf("expected remote message to survive wrapping, got %+v", remote)
	}

	auth := apperrors.NewAuthError("")
	if !errors.Is(auth, apperrors.ErrAuth) {
		t.Fatalf("expected auth kind")
	}
	if auth.Error() != "login: unknown error" {
		t.Fatalf("unexpected message %q", auth.Error())
	}
}

func TestRecoverable(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want bool
	}{
		{err: fmt.Errorf("x: %w", apperrors.ErrNetwork), want: true},
		{err: fmt.Errorf("x: %w", apperrors.ErrParse), want: true},
		{err: apperrors.NewRemoteError("schedule", "closed"), want: false},
		{err: apperrors.NewAuthError("bad id"), want: false},
		{err: fmt.Errorf("x: %w", apperrors.ErrSelection), want: false},
	}
	for _, tc := range cases {
		if got := apperrors.Recoverable(tc.err); got != tc.want {
			t.Fatalf("Recoverable(%v) = %t, want %t", tc.err, got, tc.want)
		}
	}
}
