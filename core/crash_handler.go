package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// crashHandler holds the process-wide panic handler
var crashHandler atomic.Pointer[func(any)]

// SetCrashHandler installs the handler used by Go, e.g. to restore the terminal first
func SetCrashHandler(fn func(any)) {
	if fn == nil {
		crashHandler.Store(nil)
		return
	}
	crashHandler.Store(&fn)
}

// HandleCrash reports a recovered panic through the installed handler
// Without a handler it prints the stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}
	if fn := crashHandler.Load(); fn != nil {
		(*fn)(r)
		return
	}

	fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
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
