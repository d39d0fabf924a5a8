package swr

import (
	"errors"
	"testing"
)

func TestLastErrorNilInitially(t *testing.T) {
	var c Context
	c.ClearLastError()
	if err := c.LastError(); err != nil {
		t.Fatalf("LastError() = %v, want nil", err)
	}
}

func TestRecordErrorThenLastError(t *testing.T) {
	var c Context
	defer c.ClearLastError()

	want := errors.New("arena exhausted")
	recordError(want)

	if got := c.LastError(); got != want {
		t.Fatalf("LastError() = %v, want %v", got, want)
	}
}

func TestClearLastErrorResets(t *testing.T) {
	var c Context
	recordError(errors.New("boom"))
	c.ClearLastError()

	if err := c.LastError(); err != nil {
		t.Fatalf("LastError() after Clear = %v, want nil", err)
	}
}

func TestFatalfPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Fatalf to panic")
		}
	}()
	Fatalf("out of %s", "blocks")
}
