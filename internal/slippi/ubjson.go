package slippi

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ubjsonReader decodes the subset of UBJSON used by Slippi container files.
// Values decode to nil, bool, int64, float64, string, []byte (strongly
// typed uint8 arrays), []any and map[string]any.
type ubjsonReader struct {
	buf []byte
	pos int
}

func (r *ubjsonReader) errorf(format string, args ...any) error {
	return &FormatError{Offset: r.pos, Msg: fmt.Sprintf(format, args...)}
}

func (r *ubjsonReader) need(n int) error {
	if n < 0 || r.pos+n > len(r.buf) {
		return r.errorf("unexpected end of container (need %d bytes)", n)
	}
	return nil
}

func (r *ubjsonReader) readByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *ubjsonReader) readBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// marker skips no-op markers and returns the next type marker.
func (r *ubjsonReader) marker() (byte, error) {
	for {
		m, err := r.readByte()
		if err != nil {
			return 0, err
		}
		if m != 'N' {
			return m, nil
		}
	}
}

func (r *ubjsonReader) peek() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	return r.buf[r.pos], nil
}

// integer reads an integer whose type marker is m.
func (r *ubjsonReader) integer(m byte) (int64, error) {
	switch m {
	case 'i':
		b, err := r.readByte()
		return int64(int8(b)), err
	case 'U':
		b, err := r.readByte()
		return int64(b), err
	case 'I':
		b, err := r.readBytes(2)
		if err != nil {
			return 0, err
		}
		return int64(int16(binary.BigEndian.Uint16(b))), nil
	case 'l':
		b, err := r.readBytes(4)
		if err != nil {
			return 0, err
		}
		return int64(int32(binary.BigEndian.Uint32(b))), nil
	case 'L':
		b, err := r.readBytes(8)
		if err != nil {
			return 0, err
		}
		return int64(binary.BigEndian.Uint64(b)), nil
	}
	return 0, r.errorf("expected integer marker, got %q", m)
}

// length reads a non-negative length prefix.
func (r *ubjsonReader) length() (int, error) {
	m, err := r.marker()
	if err != nil {
		return 0, err
	}
	n, err := r.integer(m)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > int64(len(r.buf)) {
		return 0, r.errorf("invalid length %d", n)
	}
	return int(n), nil
}

func (r *ubjsonReader) str() (string, error) {
	n, err := r.length()
	if err != nil {
		return "", err
	}
	b, err := r.readBytes(n)
	return string(b), err
}

// value reads one complete value.
func (r *ubjsonReader) value() (any, error) {
	m, err := r.marker()
	if err != nil {
		return nil, err
	}
	return r.valueOf(m)
}

func (r *ubjsonReader) valueOf(m byte) (any, error) {
	switch m {
	case 'Z':
		return nil, nil
	case 'T':
		return true, nil
	case 'F':
		return false, nil
	case 'i', 'U', 'I', 'l', 'L':
		return r.integer(m)
	case 'd':
		b, err := r.readBytes(4)
		if err != nil {
			return nil, err
		}
		return float64(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	case 'D':
		b, err := r.readBytes(8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
	case 'C':
		b, err := r.readByte()
		return string(rune(b)), err
	case 'S', 'H':
		return r.str()
	case '[':
		return r.array()
	case '{':
		return r.object()
	}
	return nil, r.errorf("unknown type marker %q", m)
}

// header reads the optional $type and #count of a container.
func (r *ubjsonReader) header() (elemType byte, count int, err error) {
	count = -1
	p, err := r.peek()
	if err != nil {
		return 0, 0, err
	}
	if p == '$' {
		r.pos++
		if elemType, err = r.readByte(); err != nil {
			return 0, 0, err
		}
		p, err = r.peek()
		if err != nil {
			return 0, 0, err
		}
		if p != '#' {
			return 0, 0, r.errorf("typed container without count")
		}
	}
	if p == '#' {
		r.pos++
		if count, err = r.length(); err != nil {
			return 0, 0, err
		}
	}
	return elemType, count, nil
}

func (r *ubjsonReader) array() (any, error) {
	elemType, count, err := r.header()
	if err != nil {
		return nil, err
	}
	if elemType == 'U' {
		return r.readBytes(count)
	}

	var out []any
	for i := 0; count < 0 || i < count; i++ {
		m := elemType
		if m == 0 {
			if m, err = r.marker(); err != nil {
				return nil, err
			}
			if count < 0 && m == ']' {
				break
			}
		}
		v, err := r.valueOf(m)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *ubjsonReader) object() (map[string]any, error) {
	elemType, count, err := r.header()
	if err != nil {
		return nil, err
	}

	out := make(map[string]any)
	for i := 0; count < 0 || i < count; i++ {
		if count < 0 {
			p, err := r.peek()
			if err != nil {
				return nil, err
			}
			if p == '}' {
				r.pos++
				break
			}
		}
		key, err := r.str()
		if err != nil {
			return nil, err
		}
		m := elemType
		if m == 0 {
			if m, err = r.marker(); err != nil {
				return nil, err
			}
		}
		v, err := r.valueOf(m)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		out[key] = v
	}
	return out, nil
}
