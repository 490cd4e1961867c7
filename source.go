package binwire

// Source yields borrowed slices from an input buffer. Slices returned by
// ReadExact alias the backing buffer and stay valid for its lifetime, not the
// Source's: in Go the backing array is kept alive by any slice that still
// references it.
type Source interface {
	// ReadExact returns exactly n bytes and advances the cursor. It fails
	// with an exhaustion error when fewer than n remain; it never returns a
	// short slice.
	ReadExact(n int) ([]byte, error)
	ReadByte() (byte, error)
}

// SliceSource is a Source over a borrowed byte slice.
type SliceSource struct {
	rest []byte
}

// NewSliceSource wraps p without copying it.
func NewSliceSource(p []byte) *SliceSource {
	return &SliceSource{rest: p}
}

// ReadExact splits off the first n bytes and advances the remaining view.
// The result aliases the original buffer.
func (s *SliceSource) ReadExact(n int) ([]byte, error) {
	if n < 0 || n > len(s.rest) {
		return nil, ErrSourceExhausted
	}
	out := s.rest[:n:n]
	s.rest = s.rest[n:]
	return out, nil
}

func (s *SliceSource) ReadByte() (byte, error) {
	if len(s.rest) == 0 {
		return 0, ErrSourceExhausted
	}
	c := s.rest[0]
	s.rest = s.rest[1:]
	return c, nil
}

// Remaining reports how many bytes are left to read.
func (s *SliceSource) Remaining() int { return len(s.rest) }

// Reset points the source at a new buffer, discarding any unread bytes.
func (s *SliceSource) Reset(p []byte) { s.rest = p }
