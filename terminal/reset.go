// Package terminal puts a terminal back into a usable state after the process
// lost control of it, e.g. when a goroutine panics while the screen is in raw mode
package terminal

import (
	"io"
	"os"
)

// Escape sequences written by EmergencyReset, in order
var (
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseDragOff   = []byte("\x1b[?1002l")
	csiMouseClickOff  = []byte("\x1b[?1000l")
	csiMouseSGROff    = []byte("\x1b[?1006l")
	csiCursorShow     = []byte("\x1b[?25h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	csiSGR0           = []byte("\x1b[0m")
	csiAutoWrapOn     = []byte("\x1b[?7h")
)

var resetSequence = [][]byte{
	csiMouseMotionOff,
	csiMouseDragOff,
	csiMouseClickOff,
	csiMouseSGROff,
	csiCursorShow,
	csiAltScreenExit,
	csiSGR0,
	csiAutoWrapOn,
}

// EmergencyReset leaves the alternate screen, shows the cursor and restores cooked mode
// Errors are ignored; it runs on the way out of a crash
func EmergencyReset(w io.Writer) {
	for _, seq := range resetSequence {
		_, _ = w.Write(seq)
	}

	if f, ok := w.(*os.File); ok {
		_ = f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
