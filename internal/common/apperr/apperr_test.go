package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOfAndStatus(t *testing.T) {
	err := New(KindNotFound, "booking not found")
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected KindNotFound, got %d", KindOf(err))
	}
	if HTTPStatus(err) != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", HTTPStatus(err))
	}

	plain := errors.New("boom")
	if KindOf(plain) != KindInternal {
		t.Fatalf("plain error should map to internal")
	}
	if HTTPStatus(plain) != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", HTTPStatus(plain))
	}
}

func TestWrapKeepsChain(t *testing.T) {
	inner := errors.New("duplicate entry")
	err := Wrap(KindConflict, "email already registered", inner)

	if !errors.Is(err, inner) {
		t.Fatalf("expected wrapped error in chain")
	}
	wrapped := fmt.Errorf("create user: %w", err)
	if KindOf(wrapped) != KindConflict {
		t.Fatalf("kind should survive further wrapping")
	}
	if HTTPStatus(wrapped) != http.StatusConflict {
		t.Fatalf("expected 409, got %d", HTTPStatus(wrapped))
	}
}
