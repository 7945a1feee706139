package superblock

import (
	"fmt"

	binpkg "github.com/ecnx/squtil/internal/binary"
)

// Tracker is told about every successful write made through a View.
type Tracker interface {
	MarkMutated()
}

// View is a bounds-checked overlay onto a superblock region. The region is
// usually a shared memory mapping, so every access is validated before any
// byte is read or written.
type View struct {
	buf     []byte
	tracker Tracker
	writes  int
}

// NewView creates a view over buf. It fails with ErrTooShort if buf cannot
// hold a whole superblock; no field access is possible on such a region.
func NewView(buf []byte) (*View, error) {
	if len(buf) < Size {
		return nil, fmt.Errorf("%w: %d < %d", ErrTooShort, len(buf), Size)
	}
	return &View{buf: buf}, nil
}

// NewTrackedView is NewView with writes reported to t.
func NewTrackedView(buf []byte, t Tracker) (*View, error) {
	v, err := NewView(buf)
	if err != nil {
		return nil, err
	}
	v.tracker = t
	return v, nil
}

// Len returns the length of the underlying region.
func (v *View) Len() int {
	return len(v.buf)
}

// Mutated reports whether any write has gone through the view.
func (v *View) Mutated() bool {
	return v.writes > 0
}

func (v *View) check(off int64, n int) error {
	if off < 0 || n < 0 || off > int64(len(v.buf)) || int64(len(v.buf))-off < int64(n) {
		return fmt.Errorf("%w: [%d, %d) outside [0, %d)", ErrOutOfBounds, off, off+int64(n), len(v.buf))
	}
	return nil
}

// ReadAt implements io.ReaderAt. Reads that would leave the region fail
// without copying anything.
func (v *View) ReadAt(p []byte, off int64) (int, error) {
	if err := v.check(off, len(p)); err != nil {
		return 0, err
	}
	return copy(p, v.buf[off:]), nil
}

// WriteAt implements io.WriterAt. Writes that would leave the region fail
// without touching memory.
func (v *View) WriteAt(p []byte, off int64) (int, error) {
	if err := v.check(off, len(p)); err != nil {
		return 0, err
	}
	n := copy(v.buf[off:], p)
	v.writes++
	if v.tracker != nil {
		v.tracker.MarkMutated()
	}
	return n, nil
}

// ReadField returns a copy of the field's raw bytes.
func (v *View) ReadField(f Field) ([]byte, error) {
	p := make([]byte, f.Len())
	if _, err := v.ReadAt(p, int64(f.Offset)); err != nil {
		return nil, err
	}
	return p, nil
}

// WriteField stores raw bytes into the field. p must be exactly the
// field's size.
func (v *View) WriteField(f Field, p []byte) error {
	if !binpkg.ValidWidth(f.Width) || len(p) != f.Len() {
		return fmt.Errorf("field %s: %w", f.Name, binpkg.ErrInvalidWidth)
	}
	_, err := v.WriteAt(p, int64(f.Offset))
	return err
}

// Uint reads a field as an integer in the order selected by swap.
func (v *View) Uint(f Field, swap bool) (uint64, error) {
	return binpkg.NewReader(v, binpkg.SwapConfig(swap)).At(int64(f.Offset)).ReadUintN(f.Len())
}

// Superblock decodes the whole header in the order selected by swap.
func (v *View) Superblock(swap bool) (*Superblock, error) {
	return Read(binpkg.NewReader(v, binpkg.SwapConfig(swap)))
}
