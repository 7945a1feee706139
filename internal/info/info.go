// Package info renders a superblock for human inspection.
package info

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/ecnx/squtil/internal/literal"
	"github.com/ecnx/squtil/internal/superblock"
)

var flagNames = []struct {
	bit  uint16
	name string
}{
	{superblock.FlagUncompressedInodes, "UNCOMPRESSED_INODES"},
	{superblock.FlagUncompressedData, "UNCOMPRESSED_DATA"},
	{superblock.FlagCheck, "CHECK"},
	{superblock.FlagUncompressedFragments, "UNCOMPRESSED_FRAGMENTS"},
	{superblock.FlagNoFragments, "NO_FRAGMENTS"},
	{superblock.FlagAlwaysFragments, "ALWAYS_FRAGMENTS"},
	{superblock.FlagDuplicates, "DUPLICATES"},
	{superblock.FlagExportable, "EXPORTABLE"},
	{superblock.FlagUncompressedXattrs, "UNCOMPRESSED_XATTRS"},
	{superblock.FlagNoXattrs, "NO_XATTRS"},
	{superblock.FlagCompressorOptions, "COMPRESSOR_OPTIONS"},
	{superblock.FlagUncompressedIDs, "UNCOMPRESSED_IDS"},
}

// FlagNames lists the names of the bits set in flags, in bit order.
// Unknown bits are reported as a single hex remainder.
func FlagNames(flags uint16) []string {
	var names []string
	rest := flags
	for _, f := range flagNames {
		if flags&f.bit != 0 {
			names = append(names, f.name)
			rest &^= f.bit
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%04x", rest))
	}
	return names
}

// Digest returns the BLAKE2b-256 digest of the superblock bytes.
func Digest(v *superblock.View) ([]byte, error) {
	buf := make([]byte, superblock.Size)
	if _, err := v.ReadAt(buf, 0); err != nil {
		return nil, err
	}
	sum := blake2b.Sum256(buf)
	return sum[:], nil
}

// Render writes every registry field read through v, in the order
// selected by swap, one per line. It never writes to v.
func Render(w io.Writer, v *superblock.View, swap bool) error {
	sb, err := v.Superblock(swap)
	if err != nil {
		return err
	}

	for _, f := range superblock.Fields() {
		val, err := v.Uint(f, swap)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-12s %s\n", f.Name+":", describe(sb, f.Name, val)); err != nil {
			return err
		}
	}

	var notes []string
	if !sb.HasMagic() {
		notes = append(notes, "magic does not match squashfs in this byte order")
	}
	if !sb.BlockSizeConsistent() {
		notes = append(notes, fmt.Sprintf("block_size %d does not match block_log %d", sb.BlockSize, sb.BlockLog))
	}
	for _, n := range notes {
		if _, err := fmt.Fprintf(w, "warning: %s\n", n); err != nil {
			return err
		}
	}

	sum, err := Digest(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%-12s %s\n", "blake2b:", hex.EncodeToString(sum))
	return err
}

func describe(sb *superblock.Superblock, name string, val uint64) string {
	switch name {
	case superblock.FieldMagic:
		return fmt.Sprintf("0x%08x (%s)", val, literal.UnpackMagic(uint32(val)))
	case superblock.FieldMkfsTime:
		return fmt.Sprintf("%d (%s)", val, time.Unix(int64(val), 0).UTC().Format(time.RFC3339))
	case superblock.FieldCompression:
		name := literal.CompressionName(uint16(val))
		if name == "" {
			name = "unknown"
		}
		return fmt.Sprintf("%d (%s)", val, name)
	case superblock.FieldFlags:
		names := FlagNames(uint16(val))
		if len(names) == 0 {
			return fmt.Sprintf("0x%04x", val)
		}
		return fmt.Sprintf("0x%04x (%s)", val, strings.Join(names, "|"))
	case superblock.FieldRootInode:
		block, offset := sb.RootInodeRef()
		return fmt.Sprintf("0x%016x (block 0x%x, offset %d)", val, block, offset)
	case superblock.FieldIDTable, superblock.FieldXattrTable, superblock.FieldInodeTable,
		superblock.FieldDirectoryTable, superblock.FieldFragmentTable, superblock.FieldLookupTable:
		if val == 0xFFFFFFFFFFFFFFFF {
			return "none"
		}
		return fmt.Sprintf("0x%x", val)
	default:
		return fmt.Sprintf("%d", val)
	}
}
