package superblock

import (
	"errors"
	"fmt"
	"time"

	binpkg "github.com/ecnx/squtil/internal/binary"
)

// Size is the length in bytes of a squashfs 4.0 superblock.
const Size = 96

// Magic is the superblock magic as read in the image's own byte order.
// On a little-endian image it appears on disk as "hsqs".
const Magic = 0x73717368

// Compressor ids stored in the compression field.
const (
	CompressionZlib = 1
	CompressionLzma = 2
	CompressionLzo  = 3
	CompressionXz   = 4
	CompressionLz4  = 5
	CompressionZstd = 6
)

// Superblock flag bits.
const (
	FlagUncompressedInodes    = 0x0001
	FlagUncompressedData      = 0x0002
	FlagCheck                 = 0x0004
	FlagUncompressedFragments = 0x0008
	FlagNoFragments           = 0x0010
	FlagAlwaysFragments       = 0x0020
	FlagDuplicates            = 0x0040
	FlagExportable            = 0x0080
	FlagUncompressedXattrs    = 0x0100
	FlagNoXattrs              = 0x0200
	FlagCompressorOptions     = 0x0400
	FlagUncompressedIDs       = 0x0800
)

// Errors
var (
	ErrTooShort         = errors.New("image is too short")
	ErrUnknownField     = errors.New("unsupported field")
	ErrOutOfBounds      = errors.New("field access out of bounds")
	ErrSourceTooShort   = errors.New("source image is too short")
	ErrSourceUnreadable = errors.New("source image unreadable")
)

// Superblock is a decoded copy of the header. It is detached from the
// image; edits go through [Edit], not through this struct.
type Superblock struct {
	Magic       uint32
	Inodes      uint32
	MkfsTime    uint32
	BlockSize   uint32
	Fragments   uint32
	Compression uint16
	BlockLog    uint16
	Flags       uint16
	NoIDs       uint16
	Major       uint16
	Minor       uint16
	RootInode   uint64
	BytesUsed   uint64

	IDTableStart        uint64
	XattrIDTableStart   uint64
	InodeTableStart     uint64
	DirectoryTableStart uint64
	FragmentTableStart  uint64
	LookupTableStart    uint64
}

// Read decodes the whole header from r. The reader's byte order selects
// how the integers are interpreted.
func Read(r *binpkg.Reader) (*Superblock, error) {
	var sb Superblock
	var err error

	u32 := func(dst *uint32) {
		if err == nil {
			*dst, err = r.ReadUint32()
		}
	}
	u16 := func(dst *uint16) {
		if err == nil {
			*dst, err = r.ReadUint16()
		}
	}
	u64 := func(dst *uint64) {
		if err == nil {
			*dst, err = r.ReadUint64()
		}
	}

	u32(&sb.Magic)
	u32(&sb.Inodes)
	u32(&sb.MkfsTime)
	u32(&sb.BlockSize)
	u32(&sb.Fragments)
	u16(&sb.Compression)
	u16(&sb.BlockLog)
	u16(&sb.Flags)
	u16(&sb.NoIDs)
	u16(&sb.Major)
	u16(&sb.Minor)
	u64(&sb.RootInode)
	u64(&sb.BytesUsed)
	u64(&sb.IDTableStart)
	u64(&sb.XattrIDTableStart)
	u64(&sb.InodeTableStart)
	u64(&sb.DirectoryTableStart)
	u64(&sb.FragmentTableStart)
	u64(&sb.LookupTableStart)

	if err != nil {
		return nil, fmt.Errorf("reading superblock: %w", err)
	}
	return &sb, nil
}

// Write encodes the header at the writer's position.
func (sb *Superblock) Write(w *binpkg.Writer) error {
	for _, step := range []func() error{
		func() error { return w.WriteUint32(sb.Magic) },
		func() error { return w.WriteUint32(sb.Inodes) },
		func() error { return w.WriteUint32(sb.MkfsTime) },
		func() error { return w.WriteUint32(sb.BlockSize) },
		func() error { return w.WriteUint32(sb.Fragments) },
		func() error { return w.WriteUint16(sb.Compression) },
		func() error { return w.WriteUint16(sb.BlockLog) },
		func() error { return w.WriteUint16(sb.Flags) },
		func() error { return w.WriteUint16(sb.NoIDs) },
		func() error { return w.WriteUint16(sb.Major) },
		func() error { return w.WriteUint16(sb.Minor) },
		func() error { return w.WriteUint64(sb.RootInode) },
		func() error { return w.WriteUint64(sb.BytesUsed) },
		func() error { return w.WriteUint64(sb.IDTableStart) },
		func() error { return w.WriteUint64(sb.XattrIDTableStart) },
		func() error { return w.WriteUint64(sb.InodeTableStart) },
		func() error { return w.WriteUint64(sb.DirectoryTableStart) },
		func() error { return w.WriteUint64(sb.FragmentTableStart) },
		func() error { return w.WriteUint64(sb.LookupTableStart) },
	} {
		if err := step(); err != nil {
			return fmt.Errorf("writing superblock: %w", err)
		}
	}
	return nil
}

// HasMagic reports whether the magic field matches squashfs.
func (sb *Superblock) HasMagic() bool {
	return sb.Magic == Magic
}

// CreatedAt returns mkfs_time as a UTC time.
func (sb *Superblock) CreatedAt() time.Time {
	return time.Unix(int64(sb.MkfsTime), 0).UTC()
}

// BlockSizeConsistent reports whether block_size equals 1<<block_log.
func (sb *Superblock) BlockSizeConsistent() bool {
	return sb.BlockLog < 32 && uint32(1)<<sb.BlockLog == sb.BlockSize
}

// RootInodeRef splits the root inode reference into the metadata block
// start and the offset inside the uncompressed block.
func (sb *Superblock) RootInodeRef() (block uint64, offset uint16) {
	return sb.RootInode >> 16, uint16(sb.RootInode & 0xffff)
}

// NewSuperblock returns a header with the defaults mksquashfs uses for a
// fresh 4.0 image with 128 KiB blocks and gzip compression.
func NewSuperblock() *Superblock {
	return &Superblock{
		Magic:       Magic,
		BlockSize:   131072,
		BlockLog:    17,
		Compression: CompressionZlib,
		Major:       4,
		Minor:       0,
	}
}
