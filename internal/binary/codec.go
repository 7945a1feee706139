// Package binary provides byte-order aware integer encoding for the fixed
// width fields of a squashfs superblock.
//
// A squashfs image stores its superblock in the byte order of the machine
// that created it. Callers describe the order they want to read or write
// in as a swap flag relative to the host: swap=false means the host's own
// order, swap=true means the opposite one.
package binary

import (
	"encoding/binary"
	"errors"

	"golang.org/x/sys/cpu"
)

// ErrInvalidWidth is returned when a field width is not 16, 32, or 64 bits.
var ErrInvalidWidth = errors.New("invalid field width: must be 16, 32, or 64 bits")

// HostOrder returns the byte order of the running machine.
func HostOrder() binary.ByteOrder {
	if cpu.IsBigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Swap reports whether values must be byte-swapped to be stored in target order.
func Swap(target binary.ByteOrder) bool {
	// Decide from the bytes the order produces; NativeEndian has its own
	// type and name.
	b := make([]byte, 2)
	target.PutUint16(b, 1)
	return (b[0] == 1) == cpu.IsBigEndian
}

// OrderFor returns the byte order selected by the swap flag.
func OrderFor(swap bool) binary.ByteOrder {
	host := HostOrder()
	if !swap {
		return host
	}
	if host == binary.BigEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ValidWidth reports whether width (in bits) is a supported field width.
func ValidWidth(width int) bool {
	return width == 16 || width == 32 || width == 64
}

// Truncate returns the low width bits of v.
func Truncate(v uint64, width int) uint64 {
	if width >= 64 {
		return v
	}
	return v & (uint64(1)<<width - 1)
}

// Encode converts v into width/8 bytes in the order selected by swap.
// Bits above width are dropped without error.
func Encode(v uint64, width int, swap bool) ([]byte, error) {
	if !ValidWidth(width) {
		return nil, ErrInvalidWidth
	}
	buf := make([]byte, width/8)
	putUint(OrderFor(swap), buf, v)
	return buf, nil
}

// Decode converts a 2, 4, or 8 byte buffer stored in the order selected
// by swap back into an integer.
func Decode(buf []byte, swap bool) (uint64, error) {
	if !ValidWidth(len(buf) * 8) {
		return 0, ErrInvalidWidth
	}
	return getUint(OrderFor(swap), buf), nil
}

func putUint(order binary.ByteOrder, buf []byte, v uint64) {
	switch len(buf) {
	case 2:
		order.PutUint16(buf, uint16(v))
	case 4:
		order.PutUint32(buf, uint32(v))
	case 8:
		order.PutUint64(buf, v)
	}
}

func getUint(order binary.ByteOrder, buf []byte) uint64 {
	switch len(buf) {
	case 2:
		return uint64(order.Uint16(buf))
	case 4:
		return uint64(order.Uint32(buf))
	case 8:
		return order.Uint64(buf)
	}
	return 0
}
