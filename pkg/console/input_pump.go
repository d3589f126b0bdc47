package console

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// inputPump turns raw bytes from a terminal (or any reader) into key
// events, one per Poll call. Polling never blocks: on a real terminal the
// file descriptor is switched to non-blocking mode and EAGAIN means "no
// event yet".
type inputPump struct {
	r        io.Reader
	fd       int
	nonblock bool
	parser   escapeParser
	buf      []byte
	queue    []KeyEvent
	closed   bool
}

// newInputPump wraps an arbitrary reader; EOF is treated as "no input".
func newInputPump(r io.Reader) *inputPump {
	return &inputPump{r: r, fd: -1, buf: make([]byte, 64)}
}

// newTerminalPump puts the file into non-blocking mode for the lifetime of
// the pump.
func newTerminalPump(f *os.File) (*inputPump, error) {
	fd := int(f.Fd())
	if err := setNonblock(fd, true); err != nil {
		return nil, err
	}
	return &inputPump{r: f, fd: fd, nonblock: true, buf: make([]byte, 64)}, nil
}

// Poll returns at most one key event, or nil when no input is pending.
func (p *inputPump) Poll() (*KeyEvent, error) {
	if ev := p.pop(); ev != nil {
		return ev, nil
	}
	if p.closed {
		return nil, nil
	}

	n, err := p.r.Read(p.buf)
	if n > 0 {
		for _, b := range p.buf[:n] {
			p.queue = append(p.queue, p.parser.feed(b)...)
		}
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			p.closed = true
		} else if !errors.Is(err, syscall.EAGAIN) && !errors.Is(err, syscall.EWOULDBLOCK) {
			return p.pop(), err
		}
	}
	return p.pop(), nil
}

func (p *inputPump) pop() *KeyEvent {
	if len(p.queue) == 0 {
		return nil
	}
	ev := p.queue[0]
	p.queue = p.queue[1:]
	return &ev
}

// Close restores blocking mode on the underlying descriptor.
func (p *inputPump) Close() error {
	if !p.nonblock {
		return nil
	}
	p.nonblock = false
	return setNonblock(p.fd, false)
}
