package superblock

import "testing"

func TestRegistryPacksSuperblock(t *testing.T) {
	next := 0
	for _, f := range Fields() {
		if f.Offset != next {
			t.Errorf("field %s starts at %d, expected %d", f.Name, f.Offset, next)
		}
		if f.Width != 16 && f.Width != 32 && f.Width != 64 {
			t.Errorf("field %s has invalid width %d", f.Name, f.Width)
		}
		next = f.End()
	}
	if next != Size {
		t.Errorf("fields end at %d, expected %d", next, Size)
	}
}

func TestRegistryNoOverlap(t *testing.T) {
	owner := make([]string, Size)
	for _, f := range Fields() {
		for i := f.Offset; i < f.End(); i++ {
			if owner[i] != "" {
				t.Errorf("byte %d claimed by both %s and %s", i, owner[i], f.Name)
			}
			owner[i] = f.Name
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		width  int
	}{
		{"magic", 0, 32},
		{"inodes", 4, 32},
		{"mkfs_time", 8, 32},
		{"block_size", 12, 32},
		{"fragments", 16, 32},
		{"compression", 20, 16},
		{"block_log", 22, 16},
		{"flags", 24, 16},
		{"no_ids", 26, 16},
		{"major", 28, 16},
		{"minor", 30, 16},
		{"root_inode", 32, 64},
		{"bytes_used", 40, 64},
		{"id", 48, 64},
		{"xattr", 56, 64},
		{"inode", 64, 64},
		{"directory", 72, 64},
		{"fragment", 80, 64},
		{"lookup", 88, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.name)
			}
			if f.Offset != tt.offset || f.Width != tt.width {
				t.Errorf("Lookup(%q) = offset %d width %d, expected offset %d width %d",
					tt.name, f.Offset, f.Width, tt.offset, tt.width)
			}
		})
	}

	if got := len(Fields()); got != len(tests) {
		t.Errorf("registry has %d fields, expected %d", got, len(tests))
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, name := range []string{"", "Magic", "MAGIC", "block-size", "mkfs_time ", "s_magic"} {
		if _, ok := Lookup(name); ok {
			t.Errorf("Lookup(%q) should not be found", name)
		}
	}
}

func TestFieldsReturnsCopy(t *testing.T) {
	fs := Fields()
	fs[0].Offset = 50

	f, _ := Lookup("magic")
	if f.Offset != 0 {
		t.Error("modifying Fields() result changed the registry")
	}
	if Fields()[0].Offset != 0 {
		t.Error("modifying Fields() result changed later calls")
	}
}
