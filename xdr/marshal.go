package xdr

// Encoder is implemented by every generated type.
type Encoder interface {
	EncodeTo(*Builder) error
}

// Marshal encodes a value into a new, independently owned buffer.
func Marshal(v Encoder) ([]byte, error) {
	b := NewBuilder()
	if err := v.EncodeTo(b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Unmarshal decodes one complete value from buf using a generated
// decode function, requiring the buffer to be fully consumed.  For
// values embedded in a larger message, use a Cursor directly.
func Unmarshal[T any](buf []byte, decode func(*Cursor) (T, error)) (T, error) {
	c := NewCursor(buf)
	v, err := decode(c)
	if err == nil && c.Remaining() != 0 {
		return v, ErrTrailingData
	}
	return v, err
}
