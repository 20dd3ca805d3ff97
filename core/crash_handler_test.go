package core

import (
	"errors"
	"testing"
)

func TestContainReturnsNilOnNormalCompletion(t *testing.T) {
	ran := false
	if r := Contain(func() { ran = true }); r != nil {
		t.Fatalf("Expected nil recovered value, got %v", r)
	}
	if !ran {
		t.Error("Expected function to run")
	}
}

func TestContainRecoversPanic(t *testing.T) {
	sentinel := errors.New("boom")
	r := Contain(func() { panic(sentinel) })
	if r != sentinel {
		t.Fatalf("Expected recovered sentinel, got %v", r)
	}

	// Subsequent calls are unaffected
	if r := Contain(func() {}); r != nil {
		t.Errorf("Expected nil after previous panic, got %v", r)
	}
}

func TestSetCrashCleanupNil(t *testing.T) {
	called := false
	SetCrashCleanup(func() { called = true })
	SetCrashCleanup(nil)
	if cleanup.Load() != nil {
		t.Error("Expected cleanup hook to be cleared")
	}
	if called {
		t.Error("Cleanup must not run on registration")
	}
}
