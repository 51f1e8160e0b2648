package capture

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Keys turns stdin into a per-keypress stream. The terminal is switched to
// raw mode so single keys arrive without line buffering; a background
// reader feeds a small buffered channel the pipeline drains between frames.
type Keys struct {
	fd    int
	state *term.State
	keys  chan byte
}

// OpenKeys switches stdin to raw mode. Fails when stdin is not a terminal.
func OpenKeys() (*Keys, error) {
	fd := int(os.Stdin.Fd())

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("cannot enter raw terminal mode: %w", err)
	}

	k := &Keys{fd: fd, state: state, keys: make(chan byte, 8)}
	go k.read()
	return k, nil
}

func (k *Keys) read() {
	var buf [1]byte
	for {
		n, err := os.Stdin.Read(buf[:])
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		select {
		case k.keys <- buf[0]:
		default:
			// A full buffer means the loop is behind; dropping
			// keeps each keypress one-shot instead of queueing
			// stale saves.
		}
	}
}

// Poll returns a pending keypress without blocking.
func (k *Keys) Poll() (byte, bool) {
	select {
	case b := <-k.keys:
		return b, true
	default:
		return 0, false
	}
}

// Close restores the terminal state.
func (k *Keys) Close() error {
	return term.Restore(k.fd, k.state)
}
