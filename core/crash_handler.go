package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// cleanup runs before the crash report is printed, set by the frontend that owns the terminal
var cleanup atomic.Pointer[func()]

// SetCrashCleanup registers a terminal restore hook for HandleCrash
// Keeps core independent of the terminal package
func SetCrashCleanup(fn func()) {
	if fn == nil {
		cleanup.Store(nil)
		return
	}
	cleanup.Store(&fn)
}

// HandleCrash restores the terminal, prints the panic with stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if fn := cleanup.Load(); fn != nil {
		(*fn)()
	}

	os.Stdout.Sync()

	// \r\n keeps output aligned if the terminal is still in raw mode
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}

// Contain runs fn on the calling goroutine and returns the recovered panic value
// Returns nil when fn completes normally
func Contain(fn func()) (recovered any) {
	defer func() {
		recovered = recover()
	}()
	fn()
	return nil
}
