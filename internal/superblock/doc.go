// Package superblock reads and patches the 96-byte squashfs 4.0 superblock
// in place.
//
// The superblock is the fixed-layout header at the start of every squashfs
// image. It identifies the format, records the image geometry and the
// compressor, and points at the secondary tables (id, xattr, inode,
// directory, fragment and lookup).
//
// # Layout
//
// The header is a packed sequence of 32-bit, 16-bit and 64-bit integers
// stored in the byte order of the machine that created the image:
//
//	Offset  Size  Field
//	0       4     magic ("hsqs" on little-endian images)
//	4       4     inodes
//	8       4     mkfs_time
//	12      4     block_size
//	16      4     fragments
//	20      2     compression
//	22      2     block_log
//	24      2     flags
//	26      2     no_ids
//	28      2     major
//	30      2     minor
//	32      8     root_inode
//	40      8     bytes_used
//	48      8     id
//	56      8     xattr
//	64      8     inode
//	72      8     directory
//	80      8     fragment
//	88      8     lookup
//
// # Views
//
// A [View] overlays a byte slice (usually a shared memory mapping of the
// image) and reads or writes individual fields by offset. Every access is
// bounds checked before memory is touched. Integers are always recomputed
// from bytes; no Go struct is ever aliased onto the mapping.
//
// # Editing
//
// [Edit] looks a field up by name in the registry, encodes the value to the
// field width in the requested byte order and stores it through a View.
// Values wider than the field are truncated. [CloneTimestamp] copies the
// raw mkfs_time bytes from another image's superblock.
//
// # Errors
//
//   - [ErrTooShort]: the region is shorter than [Size]
//   - [ErrUnknownField]: no registry entry has the requested name
//   - [ErrOutOfBounds]: a field access would leave the region
//   - [ErrSourceTooShort]: the clone source has fewer than [Size] bytes
//   - [ErrSourceUnreadable]: the clone source could not be opened or read
package superblock
