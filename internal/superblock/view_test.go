package superblock

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	binpkg "github.com/ecnx/squtil/internal/binary"
)

type countingTracker struct {
	marks int
}

func (c *countingTracker) MarkMutated() {
	c.marks++
}

func TestNewViewTooShort(t *testing.T) {
	for _, n := range []int{0, 1, Size - 1} {
		_, err := NewView(make([]byte, n))
		if !errors.Is(err, ErrTooShort) {
			t.Errorf("NewView(%d bytes): expected ErrTooShort, got %v", n, err)
		}
	}

	if _, err := NewView(make([]byte, Size)); err != nil {
		t.Errorf("NewView(%d bytes) failed: %v", Size, err)
	}
}

func TestViewWriteOutOfBounds(t *testing.T) {
	buf := bytes.Repeat([]byte{0xAA}, Size)
	v, err := NewView(buf)
	if err != nil {
		t.Fatalf("NewView failed: %v", err)
	}

	tests := []struct {
		name string
		off  int64
		n    int
	}{
		{"past end", Size, 1},
		{"straddles end", Size - 2, 4},
		{"negative", -1, 2},
		{"far past end", 1 << 40, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := v.WriteAt(make([]byte, tt.n), tt.off)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("expected ErrOutOfBounds, got %v", err)
			}
			if n != 0 {
				t.Errorf("expected 0 bytes written, got %d", n)
			}
		})
	}

	if !bytes.Equal(buf, bytes.Repeat([]byte{0xAA}, Size)) {
		t.Error("out-of-bounds writes modified the region")
	}
	if v.Mutated() {
		t.Error("view reports mutation after only failed writes")
	}
}

func TestViewReadOutOfBounds(t *testing.T) {
	v, _ := NewView(make([]byte, Size))
	p := []byte{1, 2, 3, 4}

	if _, err := v.ReadAt(p, Size-3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if !bytes.Equal(p, []byte{1, 2, 3, 4}) {
		t.Error("failed read modified the destination")
	}
}

func TestViewFieldPastRegion(t *testing.T) {
	v, _ := NewView(make([]byte, Size))
	bogus := Field{Name: "bogus", Offset: Size - 4, Width: 64}

	if err := v.WriteField(bogus, make([]byte, 8)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("WriteField: expected ErrOutOfBounds, got %v", err)
	}
	if _, err := v.ReadField(bogus); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("ReadField: expected ErrOutOfBounds, got %v", err)
	}
	if _, err := v.Uint(bogus, false); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Uint: expected ErrOutOfBounds, got %v", err)
	}
}

func TestViewWriteFieldWrongSize(t *testing.T) {
	v, _ := NewView(make([]byte, Size))
	f, _ := Lookup(FieldBlockSize)

	err := v.WriteField(f, []byte{1, 2})
	if !errors.Is(err, binpkg.ErrInvalidWidth) {
		t.Errorf("expected ErrInvalidWidth, got %v", err)
	}
	if v.Mutated() {
		t.Error("view reports mutation after rejected write")
	}
}

func TestViewTracksWrites(t *testing.T) {
	tracker := &countingTracker{}
	v, err := NewTrackedView(make([]byte, Size), tracker)
	if err != nil {
		t.Fatalf("NewTrackedView failed: %v", err)
	}

	if _, err := v.ReadField(MkfsTimeField()); err != nil {
		t.Fatalf("ReadField failed: %v", err)
	}
	if tracker.marks != 0 || v.Mutated() {
		t.Error("read marked the view as mutated")
	}

	if err := v.WriteField(MkfsTimeField(), []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("WriteField failed: %v", err)
	}
	if tracker.marks != 1 || !v.Mutated() {
		t.Errorf("expected one mutation, tracker saw %d", tracker.marks)
	}
}

func TestNewTrackedViewTooShort(t *testing.T) {
	tracker := &countingTracker{}
	if _, err := NewTrackedView(make([]byte, 10), tracker); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
}

func TestViewUint(t *testing.T) {
	buf := make([]byte, Size)
	copy(buf[12:16], []byte{0x00, 0x02, 0x00, 0x00})
	v, _ := NewView(buf)
	f, _ := Lookup(FieldBlockSize)

	got, err := v.Uint(f, binpkg.Swap(binary.BigEndian))
	if err != nil {
		t.Fatalf("Uint failed: %v", err)
	}
	if got != 0x20000 {
		t.Errorf("big-endian read: expected 0x20000, got %#x", got)
	}

	got, err = v.Uint(f, binpkg.Swap(binary.LittleEndian))
	if err != nil {
		t.Fatalf("Uint failed: %v", err)
	}
	if got != 0x200 {
		t.Errorf("little-endian read: expected 0x200, got %#x", got)
	}
}

func TestViewSuperblock(t *testing.T) {
	want := sampleSuperblock()
	buf := buildImage(t, want, binary.BigEndian, Size+64)
	v, _ := NewView(buf)

	got, err := v.Superblock(binpkg.Swap(binary.BigEndian))
	if err != nil {
		t.Fatalf("Superblock failed: %v", err)
	}
	if *got != *want {
		t.Errorf("decoded superblock mismatch:\n got  %+v\n want %+v", *got, *want)
	}
	if v.Mutated() {
		t.Error("decoding marked the view as mutated")
	}
}
