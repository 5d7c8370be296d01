//go:build !linux

package terminal

// resetTerminalMode is a no-op where termios ioctls differ or don't exist
func resetTerminalMode() {}
