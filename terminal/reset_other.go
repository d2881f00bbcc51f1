//go:build !linux

package terminal

// resetTerminalMode is a no-op outside linux
func resetTerminalMode() {}
