package binary

import (
	"encoding/binary"
	"io"
)

// Reader reads fixed-width integers from an io.ReaderAt in a configured
// byte order.
type Reader struct {
	r     io.ReaderAt
	order binary.ByteOrder
	pos   int64
}

// Config holds reader and writer configuration.
type Config struct {
	ByteOrder binary.ByteOrder
}

// DefaultConfig returns a configuration using the host byte order.
func DefaultConfig() Config {
	return Config{ByteOrder: HostOrder()}
}

// SwapConfig returns the configuration selected by a swap flag.
func SwapConfig(swap bool) Config {
	return Config{ByteOrder: OrderFor(swap)}
}

// NewReader creates a binary reader with the given configuration.
func NewReader(r io.ReaderAt, cfg Config) *Reader {
	return &Reader{
		r:     r,
		order: cfg.ByteOrder,
	}
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying io.ReaderAt but has independent position.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{
		r:     r.r,
		order: r.order,
		pos:   offset,
	}
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// ReadBytes reads exactly n bytes from the current position.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	read, err := r.r.ReadAt(buf, r.pos)
	if read < n && (err == nil || err == io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	if err != nil && err != io.EOF {
		return nil, err
	}
	r.pos += int64(n)
	return buf, nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(buf), nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(buf), nil
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(buf), nil
}

// ReadUintN reads an unsigned integer of n bytes (2, 4, or 8).
func (r *Reader) ReadUintN(n int) (uint64, error) {
	if !ValidWidth(n * 8) {
		return 0, ErrInvalidWidth
	}
	buf, err := r.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	return getUint(r.order, buf), nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int64) {
	r.pos += n
}
