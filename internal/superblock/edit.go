package superblock

import (
	"fmt"

	binpkg "github.com/ecnx/squtil/internal/binary"
)

// Edit stores value into the named field. The value is truncated to the
// field width and written in the order selected by swap. An unknown name
// leaves the region untouched.
func Edit(v *View, name string, swap bool, value uint64) error {
	f, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	buf, err := binpkg.Encode(value, f.Width, swap)
	if err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}
	if err := v.WriteField(f, buf); err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}
	return nil
}
