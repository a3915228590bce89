package termhost

import (
	"os"

	"golang.org/x/term"
)

// InitialSize reads the controlling terminal's current size via
// x/term, for the first paint before bubbletea's own WindowSizeMsg
// arrives.
func InitialSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
