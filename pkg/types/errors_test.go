package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestWriteErrorUnwrap(t *testing.T) {
	cause := errors.New("FOREIGN KEY constraint failed")
	err := fmt.Errorf("delete category: %w", &WriteError{
		Collection: CollectionCategories,
		Op:         OpDelete,
		ID:         "c1",
		Err:        cause,
	})

	if !IsWriteError(err) {
		t.Fatal("expected IsWriteError to be true")
	}
	if IsFetchError(err) {
		t.Fatal("expected IsFetchError to be false")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected the cause to be reachable with errors.Is")
	}
	want := "delete category: delete categories c1: FOREIGN KEY constraint failed"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestFetchErrorMessage(t *testing.T) {
	err := &FetchError{Collection: CollectionOrders, Err: errors.New("connection refused")}
	if err.Error() != "fetch orders: connection refused" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !IsFetchError(err) {
		t.Fatal("expected IsFetchError to be true")
	}
}

func TestAuthErrorIsVerbatim(t *testing.T) {
	err := &AuthError{Identifier: "a@b.c", Err: ErrInvalidCredentials}
	if err.Error() != ErrInvalidCredentials.Error() {
		t.Fatalf("expected verbatim message, got %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("expected errors.Is to match ErrInvalidCredentials")
	}
}
