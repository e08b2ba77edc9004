package audio

import (
	"io"
	"sync"
)

// ring is a fixed-capacity byte FIFO shared by the pump (writer) and the device (reader).
// Reads never block: missing bytes are filled with silence.
type ring struct {
	mu   sync.Mutex
	buf  []byte
	head int
	size int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]byte, capacity)}
}

// Write stores as much of p as fits and returns io.ErrShortWrite for the rest.
func (r *ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := min(len(p), len(r.buf)-r.size)
	tail := (r.head + r.size) % max(len(r.buf), 1)
	for written := 0; written < n; {
		end := min(len(r.buf), tail+n-written)
		c := copy(r.buf[tail:end], p[written:n])
		written += c
		tail = (tail + c) % len(r.buf)
	}
	r.size += n

	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Read fills p with buffered bytes followed by silence.
func (r *ring) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := min(len(p), r.size)
	for read := 0; read < n; {
		end := min(len(r.buf), r.head+n-read)
		c := copy(p[read:n], r.buf[r.head:end])
		read += c
		r.head = (r.head + c) % len(r.buf)
	}
	r.size -= n

	clear(p[n:])
	return len(p), nil
}

// Free returns the number of bytes Write would accept.
func (r *ring) Free() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buf) - r.size
}

// Buffered returns the number of bytes waiting to be read.
func (r *ring) Buffered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Reset drops all buffered bytes.
func (r *ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.head = 0
	r.size = 0
}
