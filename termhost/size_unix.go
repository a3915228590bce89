//go:build unix

package termhost

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// WatchResize invokes onChange whenever the controlling terminal
// receives SIGWINCH, reading the new size via an ioctl rather than
// waiting on bubbletea's own polling — useful for hosts embedding the
// terminal surface outside a full tea.Program. Returns a stop
// function.
func WatchResize(fd int, onChange func(width, height int)) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
				if err != nil {
					continue
				}
				onChange(int(ws.Col), int(ws.Row))
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
