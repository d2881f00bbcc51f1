package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
)

// HandleCrash resets the terminal, prints the panic with its stack and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	EmergencyReset(os.Stdout)
	os.Stdout.Sync()

	// \r\n keeps the trace readable if raw mode survived the reset
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mMINI-ADVENTURE CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the go keyword so a crash never leaves the terminal raw
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
