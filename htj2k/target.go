package htj2k

import "github.com/osamu620/kakadujs/engine"

// Ensure BufferTarget implements engine.Target
var _ engine.Target = (*BufferTarget)(nil)

// BufferTarget is a compressed-data target backed by a growable owned
// byte buffer. The encoder resets it at the start of every encode; it
// grows monotonically during the push phase.
type BufferTarget struct {
	buf []byte
}

// Reset truncates the buffer to empty, keeping its capacity.
func (t *BufferTarget) Reset() {
	t.buf = t.buf[:0]
}

// Grow pre-reserves capacity for at least n more bytes. The reservation
// is a heuristic; Write still grows past it as needed.
func (t *BufferTarget) Grow(n int) {
	if n <= 0 {
		return
	}
	if cap(t.buf)-len(t.buf) >= n {
		return
	}
	grown := make([]byte, len(t.buf), len(t.buf)+n)
	copy(grown, t.buf)
	t.buf = grown
}

// Write appends all of p. It never partially appends.
func (t *BufferTarget) Write(p []byte) error {
	t.buf = append(t.buf, p...)
	return nil
}

// Capabilities reports that the target accepts sequential writes only.
func (t *BufferTarget) Capabilities() engine.TargetCap {
	return engine.CapSequential
}

// Close marks the end of the stream. A buffer target has nothing to
// release.
func (t *BufferTarget) Close() error {
	return nil
}

// Bytes returns a view of the collected bytes, valid until the next
// Reset or Write.
func (t *BufferTarget) Bytes() []byte {
	return t.buf
}

// Len returns the number of collected bytes.
func (t *BufferTarget) Len() int {
	return len(t.buf)
}
