// Package reflectwire derives binwire encoders and decoders for plain Go
// values through reflection, for types that do not hand-write
// MarshalWire/UnmarshalWire. It produces exactly the core wire format:
// exported struct fields in declaration order, pointer fields as Option,
// strings and byte slices with 16-bit length prefixes, slices as 16-bit
// counted sequences, arrays as fixed-arity tuples with no prefix, and maps as
// 8-bit counted pair lists. Types implementing the binwire interfaces are
// delegated to.
package reflectwire

import (
	"encoding/binary"
	"errors"
	"reflect"
	"sync"

	"github.com/rawbytedev/binwire"
)

var (
	ErrNotPointer  = errors.New("expected non-nil pointer")
	ErrUnsupported = errors.New("unsupported type")
)

// Options control decode-side borrowing.
type Options struct {
	// BorrowStrings aliases decoded strings into the input buffer instead of
	// copying them. The caller must keep the buffer alive for as long as the
	// decoded value. Byte slices always borrow.
	BorrowStrings bool
}

// Codec encodes and decodes values reflectively. A Codec is safe for
// concurrent use; the per-type field plans are cached behind a lock.
type Codec struct {
	opts  Options
	order binary.ByteOrder

	mu    sync.RWMutex
	plans map[reflect.Type]*structPlan
}

type structPlan struct {
	fields []int // exported field indexes, declaration order
}

// New builds a Codec for the given byte order.
func New(order binary.ByteOrder, opts Options) *Codec {
	return &Codec{
		opts:  opts,
		order: order,
		plans: make(map[reflect.Type]*structPlan),
	}
}

func (c *Codec) getPlan(t reflect.Type) *structPlan {
	c.mu.RLock()
	if p, ok := c.plans[t]; ok {
		c.mu.RUnlock()
		return p
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.plans[t]; ok {
		return p
	}
	p := &structPlan{}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			continue // skip unexported
		}
		p.fields = append(p.fields, i)
	}
	c.plans[t] = p
	return p
}

// growSink is a Sink that appends to a heap buffer. The convenience layer
// trades the fixed-capacity discipline for not having to size the output.
type growSink struct {
	buf []byte
}

func (s *growSink) WriteByte(c byte) error {
	s.buf = append(s.buf, c)
	return nil
}

func (s *growSink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

// Marshal encodes v, following pointers at the top level.
func (c *Codec) Marshal(v any) ([]byte, error) {
	sink := &growSink{buf: make([]byte, 0, 64)}
	if err := c.MarshalTo(sink, v); err != nil {
		return nil, err
	}
	return sink.buf, nil
}

// MarshalTo encodes v into an existing sink, e.g. a binwire.BufferWriter
// over a preallocated buffer.
func (c *Codec) MarshalTo(w binwire.Sink, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ErrNotPointer
		}
		rv = rv.Elem()
	}
	enc := binwire.NewEncoder(w, c.order)
	if err := c.encodeValue(enc, rv); err != nil {
		return err
	}
	return enc.Flush()
}

// Unmarshal decodes data into out, which must be a non-nil pointer. Decoded
// byte slices, and strings when BorrowStrings is set, alias data.
func (c *Codec) Unmarshal(data []byte, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrNotPointer
	}
	dec := binwire.NewDecoderWithOptions(
		binwire.NewSliceSource(data),
		c.order,
		binwire.DecoderOptions{CopyStrings: !c.opts.BorrowStrings},
	)
	return c.decodeValue(dec, rv.Elem())
}
