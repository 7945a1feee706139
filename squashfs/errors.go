// Package squashfs inspects and patches the superblock of a squashfs image
// file in place through a shared memory mapping.
package squashfs

import (
	"errors"

	"github.com/ecnx/squtil/internal/literal"
	"github.com/ecnx/squtil/internal/superblock"
)

// Common errors
var (
	ErrTooShort         = superblock.ErrTooShort
	ErrUnknownField     = superblock.ErrUnknownField
	ErrOutOfBounds      = superblock.ErrOutOfBounds
	ErrSourceTooShort   = superblock.ErrSourceTooShort
	ErrSourceUnreadable = superblock.ErrSourceUnreadable
	ErrMalformedValue   = literal.ErrMalformed
	ErrStorage          = errors.New("storage error")
)

// SuperblockSize is the number of bytes an image must have for any field
// to be read or written.
const SuperblockSize = superblock.Size
