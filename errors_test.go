package sqpack

import (
	"errors"
	"testing"
)

func TestErrorIsSentinelMatching(t *testing.T) {
	err := &Error{Kind: KindNotFound, Hash: 0xABCD}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("errors.Is(%v, ErrNotFound) = false, want true", err)
	}
	if errors.Is(err, ErrEmptyAsset) {
		t.Errorf("errors.Is(%v, ErrEmptyAsset) = true, want false", err)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	wrapped := wrapf(KindIoError, cause, "reading %s", "foo")
	if !errors.Is(wrapped, cause) {
		t.Errorf("errors.Is(wrapped, cause) = false, want true")
	}
}
