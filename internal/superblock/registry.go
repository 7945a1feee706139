package superblock

// Field describes one superblock field: where it lives and how wide it is.
type Field struct {
	Name   string
	Offset int
	Width  int // bits: 16, 32 or 64
}

// Len returns the field size in bytes.
func (f Field) Len() int {
	return f.Width / 8
}

// End returns the offset one past the field's last byte.
func (f Field) End() int {
	return f.Offset + f.Len()
}

// Field names accepted by Lookup.
const (
	FieldMagic          = "magic"
	FieldInodes         = "inodes"
	FieldMkfsTime       = "mkfs_time"
	FieldBlockSize      = "block_size"
	FieldFragments      = "fragments"
	FieldCompression    = "compression"
	FieldBlockLog       = "block_log"
	FieldFlags          = "flags"
	FieldNoIDs          = "no_ids"
	FieldMajor          = "major"
	FieldMinor          = "minor"
	FieldRootInode      = "root_inode"
	FieldBytesUsed      = "bytes_used"
	FieldIDTable        = "id"
	FieldXattrTable     = "xattr"
	FieldInodeTable     = "inode"
	FieldDirectoryTable = "directory"
	FieldFragmentTable  = "fragment"
	FieldLookupTable    = "lookup"
)

// fields is in on-disk order and packs [0, Size) without gaps.
var fields = []Field{
	{FieldMagic, 0, 32},
	{FieldInodes, 4, 32},
	{FieldMkfsTime, 8, 32},
	{FieldBlockSize, 12, 32},
	{FieldFragments, 16, 32},
	{FieldCompression, 20, 16},
	{FieldBlockLog, 22, 16},
	{FieldFlags, 24, 16},
	{FieldNoIDs, 26, 16},
	{FieldMajor, 28, 16},
	{FieldMinor, 30, 16},
	{FieldRootInode, 32, 64},
	{FieldBytesUsed, 40, 64},
	{FieldIDTable, 48, 64},
	{FieldXattrTable, 56, 64},
	{FieldInodeTable, 64, 64},
	{FieldDirectoryTable, 72, 64},
	{FieldFragmentTable, 80, 64},
	{FieldLookupTable, 88, 64},
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[f.Name] = f
	}
	return m
}()

// Lookup returns the field with the given name. Names are case-sensitive.
func Lookup(name string) (Field, bool) {
	f, ok := fieldsByName[name]
	return f, ok
}

// Fields returns every field in on-disk order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// MkfsTimeField returns the creation timestamp field.
func MkfsTimeField() Field {
	f, _ := Lookup(FieldMkfsTime)
	return f
}
