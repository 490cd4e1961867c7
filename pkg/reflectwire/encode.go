package reflectwire

import (
	"reflect"

	"github.com/rawbytedev/binwire"
)

var (
	marshalerType   = reflect.TypeOf((*binwire.Marshaler)(nil)).Elem()
	unmarshalerType = reflect.TypeOf((*binwire.Unmarshaler)(nil)).Elem()
	uint128Type     = reflect.TypeOf(binwire.Uint128{})
	int128Type      = reflect.TypeOf(binwire.Int128{})
)

func (c *Codec) encodeValue(e *binwire.Encoder, v reflect.Value) error {
	if m, ok := asMarshaler(v); ok {
		return m.MarshalWire(e)
	}

	switch v.Kind() {
	case reflect.Bool:
		return e.WriteBool(v.Bool())
	case reflect.Int8:
		return e.WriteI8(int8(v.Int()))
	case reflect.Int16:
		return e.WriteI16(int16(v.Int()))
	case reflect.Int32:
		return e.WriteI32(int32(v.Int()))
	case reflect.Int64, reflect.Int:
		// int is pinned to 8 bytes so the wire shape is platform-independent
		return e.WriteI64(v.Int())
	case reflect.Uint8:
		return e.WriteU8(uint8(v.Uint()))
	case reflect.Uint16:
		return e.WriteU16(uint16(v.Uint()))
	case reflect.Uint32:
		return e.WriteU32(uint32(v.Uint()))
	case reflect.Uint64, reflect.Uint:
		return e.WriteU64(v.Uint())
	case reflect.Float32:
		return e.WriteF32(float32(v.Float()))
	case reflect.Float64:
		return e.WriteF64(v.Float())
	case reflect.String:
		return e.WriteString(v.String())
	case reflect.Pointer:
		if v.IsNil() {
			return e.WriteOption(false)
		}
		if err := e.WriteOption(true); err != nil {
			return err
		}
		return c.encodeValue(e, v.Elem())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return e.WriteBytes(v.Bytes())
		}
		return c.encodeSeq(e, v)
	case reflect.Array:
		// fixed arity known to both sides, no prefix
		for i := 0; i < v.Len(); i++ {
			if err := c.encodeValue(e, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		return c.encodeMap(e, v)
	case reflect.Struct:
		switch v.Type() {
		case uint128Type:
			return e.WriteU128(v.Interface().(binwire.Uint128))
		case int128Type:
			return e.WriteI128(v.Interface().(binwire.Int128))
		}
		plan := c.getPlan(v.Type())
		for _, idx := range plan.fields {
			if err := c.encodeValue(e, v.Field(idx)); err != nil {
				return err
			}
		}
		return nil
	default:
		return ErrUnsupported
	}
}

func (c *Codec) encodeSeq(e *binwire.Encoder, v reflect.Value) error {
	s, err := e.BeginSeq(v.Len())
	if err != nil {
		return err
	}
	for i := 0; i < v.Len(); i++ {
		if err := s.Element(); err != nil {
			return err
		}
		if err := c.encodeValue(e, v.Index(i)); err != nil {
			return err
		}
	}
	return s.End()
}

func (c *Codec) encodeMap(e *binwire.Encoder, v reflect.Value) error {
	m, err := e.BeginMap(v.Len())
	if err != nil {
		return err
	}
	iter := v.MapRange()
	for iter.Next() {
		if err := m.Pair(); err != nil {
			return err
		}
		if err := c.encodeValue(e, iter.Key()); err != nil {
			return err
		}
		if err := c.encodeValue(e, iter.Value()); err != nil {
			return err
		}
	}
	return m.End()
}

func asMarshaler(v reflect.Value) (binwire.Marshaler, bool) {
	if v.Type().Implements(marshalerType) {
		return v.Interface().(binwire.Marshaler), true
	}
	if v.CanAddr() && v.Addr().Type().Implements(marshalerType) {
		return v.Addr().Interface().(binwire.Marshaler), true
	}
	return nil, false
}
