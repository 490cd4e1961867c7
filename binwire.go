// Package binwire implements a compact, deterministic, schema-less binary
// encoding with zero-allocation decode. Variable-length payloads (strings and
// byte strings) are borrowed straight from the input buffer rather than
// copied, so decoded values must not outlive the buffer they were decoded
// from.
//
// The format carries no type tags, struct names or field names: both ends
// agree out of band on the exact shape being encoded and on the byte order.
// Only Option values and enum variants place a discriminant byte on the wire.
package binwire

import "encoding/binary"

// Marshaler is implemented by types that can write themselves to an Encoder.
// Composite types encode their members in a fixed declaration order; that
// order is part of the wire contract and must match the Unmarshaler side.
type Marshaler interface {
	MarshalWire(e *Encoder) error
}

// Unmarshaler is the decode side of Marshaler. Implementations must consume
// exactly the bytes their MarshalWire counterpart produced.
type Unmarshaler interface {
	UnmarshalWire(d *Decoder) error
}

// Encode writes v to w using the given byte order. The order is a call-time
// parameter and is never placed on the wire; decode must use the same one.
func Encode(w Sink, order binary.ByteOrder, v Marshaler) error {
	e := NewEncoder(w, order)
	if err := v.MarshalWire(e); err != nil {
		return err
	}
	return e.Flush()
}

// Decode reconstructs a T from r. The target type drives the decode; the
// stream itself is not self-describing.
func Decode[T any, PT interface {
	*T
	Unmarshaler
}](r Source, order binary.ByteOrder) (T, error) {
	var out T
	d := NewDecoder(r, order)
	if err := PT(&out).UnmarshalWire(d); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// DecodeInto decodes from r into an existing value.
func DecodeInto(r Source, order binary.ByteOrder, v Unmarshaler) error {
	return v.UnmarshalWire(NewDecoder(r, order))
}

// EncodeSeq encodes xs as a 16-bit element count followed by each element in
// order.
func EncodeSeq[T any](e *Encoder, xs []T, elem func(*Encoder, T) error) error {
	s, err := e.BeginSeq(len(xs))
	if err != nil {
		return err
	}
	for _, x := range xs {
		if err := s.Element(); err != nil {
			return err
		}
		if err := elem(e, x); err != nil {
			return err
		}
	}
	return s.End()
}

// DecodeSeq decodes a sequence into a freshly allocated slice. Callers that
// need allocation-free decode drive BeginSeq and the cursor directly.
func DecodeSeq[T any](d *Decoder, elem func(*Decoder) (T, error)) ([]T, error) {
	s, err := d.BeginSeq()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, s.Remaining())
	for s.Next() {
		x, err := elem(d)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

// EncodeMapOf encodes m as an 8-bit pair count followed by each key and its
// value. Pair order is whatever the map iteration yields; the format does not
// sort.
func EncodeMapOf[K comparable, V any](e *Encoder, m map[K]V, key func(*Encoder, K) error, val func(*Encoder, V) error) error {
	s, err := e.BeginMap(len(m))
	if err != nil {
		return err
	}
	for k, v := range m {
		if err := s.Pair(); err != nil {
			return err
		}
		if err := key(e, k); err != nil {
			return err
		}
		if err := val(e, v); err != nil {
			return err
		}
	}
	return s.End()
}

// DecodeMapOf decodes an 8-bit counted pair list into a new map.
func DecodeMapOf[K comparable, V any](d *Decoder, key func(*Decoder) (K, error), val func(*Decoder) (V, error)) (map[K]V, error) {
	s, err := d.BeginMap()
	if err != nil {
		return nil, err
	}
	out := make(map[K]V, s.Remaining())
	for s.Next() {
		k, err := key(d)
		if err != nil {
			return nil, err
		}
		v, err := val(d)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// EncodeOption encodes v as absent when nil, otherwise as a presence tag
// followed by the pointed-to value.
func EncodeOption[T any](e *Encoder, v *T, elem func(*Encoder, T) error) error {
	if v == nil {
		return e.WriteOption(false)
	}
	if err := e.WriteOption(true); err != nil {
		return err
	}
	return elem(e, *v)
}

// DecodeOption decodes an Option, returning nil for the absent case.
func DecodeOption[T any](d *Decoder, elem func(*Decoder) (T, error)) (*T, error) {
	present, err := d.ReadOption()
	if err != nil || !present {
		return nil, err
	}
	x, err := elem(d)
	if err != nil {
		return nil, err
	}
	return &x, nil
}
