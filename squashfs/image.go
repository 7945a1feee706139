package squashfs

import (
	"errors"
	"fmt"
	"io"

	"github.com/ecnx/squtil/internal/info"
	"github.com/ecnx/squtil/internal/literal"
	"github.com/ecnx/squtil/internal/logger"
	"github.com/ecnx/squtil/internal/mapping"
	"github.com/ecnx/squtil/internal/superblock"
)

// Inspect maps the image read-only and writes a description of every
// superblock field to w.
func Inspect(path string, w io.Writer, opts ...Option) error {
	o := applyOptions(opts)
	return withView(path, mapping.ReadOnly, func(v *superblock.View) error {
		return info.Render(w, v, o.swap())
	})
}

// ReadField returns the named field's value.
func ReadField(path, name string, opts ...Option) (uint64, error) {
	o := applyOptions(opts)
	f, ok := superblock.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	var val uint64
	err := withView(path, mapping.ReadOnly, func(v *superblock.View) error {
		var err error
		val, err = v.Uint(f, o.swap())
		return err
	})
	return val, err
}

// EditField stores value in the named field and flushes the change to
// stable storage before returning. Values wider than the field are
// truncated.
func EditField(path, name string, value uint64, opts ...Option) error {
	o := applyOptions(opts)
	return withView(path, mapping.ReadWrite, func(v *superblock.View) error {
		if err := superblock.Edit(v, name, o.swap(), value); err != nil {
			return err
		}
		logger.Info("%s: %s set to %#x", path, name, value)
		return nil
	})
}

// EditFieldLiteral parses arg as a value literal for the named field and
// stores it like EditField. An unknown field name, then a malformed
// literal, is reported before the image is opened.
func EditFieldLiteral(path, name, arg string, opts ...Option) error {
	if _, ok := superblock.Lookup(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	value, err := literal.Parse(name, arg)
	if err != nil {
		return err
	}
	return EditField(path, name, value, opts...)
}

// CloneTime copies the mkfs_time field from the image at src into the
// image at path. The stored bytes are copied unchanged, so both images
// must share a byte order.
func CloneTime(path, src string) error {
	return withView(path, mapping.ReadWrite, func(v *superblock.View) error {
		if err := superblock.CloneTimestamp(v, src); err != nil {
			return err
		}
		logger.Info("%s: mkfs_time cloned from %s", path, src)
		return nil
	})
}

// withView maps path for the duration of fn. Writes through the view mark
// the region mutated, so Close flushes them; the region is always
// released, and a flush or unmap failure is joined to fn's error.
func withView(path string, mode mapping.Mode, fn func(*superblock.View) error) (err error) {
	r, err := mapping.Open(path, mode)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("%w: %w", ErrStorage, cerr))
		}
	}()

	var v *superblock.View
	if mode == mapping.ReadWrite {
		v, err = superblock.NewTrackedView(r.Bytes(), r)
	} else {
		v, err = superblock.NewView(r.Bytes())
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return fn(v)
}
