package binwire

// Sink is the minimal byte output the Encoder writes to. Write must be
// all-or-nothing relative to its own error: a failed call reports nothing
// written.
type Sink interface {
	WriteByte(c byte) error
	Write(p []byte) (n int, err error)
}

// Flusher is implemented by sinks with internal buffering. Sinks without it
// need no flushing.
type Flusher interface {
	Flush() error
}

// BufferWriter is a fixed-capacity Sink over a caller-owned buffer. It fails
// with ErrSinkFull instead of growing.
type BufferWriter struct {
	buf []byte
	n   int
}

// NewBufferWriter wraps buf. The writer borrows buf; it never reallocates.
func NewBufferWriter(buf []byte) *BufferWriter {
	return &BufferWriter{buf: buf}
}

func (w *BufferWriter) WriteByte(c byte) error {
	if w.n >= len(w.buf) {
		return ErrSinkFull
	}
	w.buf[w.n] = c
	w.n++
	return nil
}

func (w *BufferWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > len(w.buf) {
		return 0, ErrSinkFull
	}
	n := copy(w.buf[w.n:], p)
	w.n += n
	return n, nil
}

// Len reports how many bytes have been written so far.
func (w *BufferWriter) Len() int { return w.n }

// Bytes returns the written prefix of the underlying buffer.
func (w *BufferWriter) Bytes() []byte { return w.buf[:w.n] }

// Reset rewinds the write cursor, keeping the buffer.
func (w *BufferWriter) Reset() { w.n = 0 }
