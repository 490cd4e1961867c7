package reflectwire

import (
	"reflect"

	"github.com/rawbytedev/binwire"
)

func (c *Codec) decodeValue(d *binwire.Decoder, v reflect.Value) error {
	if u, ok := asUnmarshaler(v); ok {
		return u.UnmarshalWire(d)
	}

	switch v.Kind() {
	case reflect.Bool:
		b, err := d.ReadBool()
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		n, err := c.decodeInt(d, v.Kind())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		n, err := c.decodeUint(d, v.Kind())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32:
		f, err := d.ReadF32()
		if err != nil {
			return err
		}
		v.SetFloat(float64(f))
	case reflect.Float64:
		f, err := d.ReadF64()
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.String:
		s, err := d.ReadString()
		if err != nil {
			return err
		}
		v.SetString(s)
	case reflect.Pointer:
		present, err := d.ReadOption()
		if err != nil {
			return err
		}
		if !present {
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		elem := reflect.New(v.Type().Elem())
		if err := c.decodeValue(d, elem.Elem()); err != nil {
			return err
		}
		v.Set(elem)
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b, err := d.ReadBytes()
			if err != nil {
				return err
			}
			v.SetBytes(b) // borrowed view into the input buffer
			return nil
		}
		return c.decodeSeq(d, v)
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := c.decodeValue(d, v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Map:
		return c.decodeMap(d, v)
	case reflect.Struct:
		switch v.Type() {
		case uint128Type:
			u, err := d.ReadU128()
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(u))
			return nil
		case int128Type:
			i, err := d.ReadI128()
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(i))
			return nil
		}
		plan := c.getPlan(v.Type())
		for _, idx := range plan.fields {
			if err := c.decodeValue(d, v.Field(idx)); err != nil {
				return err
			}
		}
	default:
		return ErrUnsupported
	}
	return nil
}

func (c *Codec) decodeInt(d *binwire.Decoder, k reflect.Kind) (int64, error) {
	switch k {
	case reflect.Int8:
		v, err := d.ReadI8()
		return int64(v), err
	case reflect.Int16:
		v, err := d.ReadI16()
		return int64(v), err
	case reflect.Int32:
		v, err := d.ReadI32()
		return int64(v), err
	default: // Int64, Int
		return d.ReadI64()
	}
}

func (c *Codec) decodeUint(d *binwire.Decoder, k reflect.Kind) (uint64, error) {
	switch k {
	case reflect.Uint8:
		v, err := d.ReadU8()
		return uint64(v), err
	case reflect.Uint16:
		v, err := d.ReadU16()
		return uint64(v), err
	case reflect.Uint32:
		v, err := d.ReadU32()
		return uint64(v), err
	default: // Uint64, Uint
		return d.ReadU64()
	}
}

func (c *Codec) decodeSeq(d *binwire.Decoder, v reflect.Value) error {
	s, err := d.BeginSeq()
	if err != nil {
		return err
	}
	n := s.Remaining()
	slice := reflect.MakeSlice(v.Type(), n, n)
	for i := 0; s.Next(); i++ {
		if err := c.decodeValue(d, slice.Index(i)); err != nil {
			return err
		}
	}
	v.Set(slice)
	return nil
}

func (c *Codec) decodeMap(d *binwire.Decoder, v reflect.Value) error {
	m, err := d.BeginMap()
	if err != nil {
		return err
	}
	t := v.Type()
	out := reflect.MakeMapWithSize(t, m.Remaining())
	for m.Next() {
		key := reflect.New(t.Key()).Elem()
		if err := c.decodeValue(d, key); err != nil {
			return err
		}
		val := reflect.New(t.Elem()).Elem()
		if err := c.decodeValue(d, val); err != nil {
			return err
		}
		out.SetMapIndex(key, val)
	}
	v.Set(out)
	return nil
}

func asUnmarshaler(v reflect.Value) (binwire.Unmarshaler, bool) {
	if v.CanAddr() && v.Addr().Type().Implements(unmarshalerType) {
		return v.Addr().Interface().(binwire.Unmarshaler), true
	}
	return nil, false
}
