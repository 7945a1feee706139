package superblock

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.sqsh")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestCloneTimestamp(t *testing.T) {
	target := sampleSuperblock()
	target.MkfsTime = 0
	buf := buildImage(t, target, binary.LittleEndian, Size+128)
	before := append([]byte(nil), buf...)

	source := sampleSuperblock()
	source.MkfsTime = 1700000000
	source.Inodes = 999
	srcPath := writeFile(t, buildImage(t, source, binary.LittleEndian, Size))

	v, _ := NewView(buf)
	if err := CloneTimestamp(v, srcPath); err != nil {
		t.Fatalf("CloneTimestamp failed: %v", err)
	}

	if got := binary.LittleEndian.Uint32(buf[8:12]); got != 1700000000 {
		t.Errorf("expected mkfs_time 1700000000, got %d", got)
	}
	if !equalOutside(before, buf, 8, 12) {
		t.Error("bytes outside mkfs_time changed")
	}
	if !v.Mutated() {
		t.Error("view not marked mutated")
	}
}

func TestCloneTimestampCopiesRawBytes(t *testing.T) {
	// The source is big-endian and the target little-endian: the stored
	// bytes are copied verbatim, not converted.
	source := sampleSuperblock()
	source.MkfsTime = 0x01020304
	srcPath := writeFile(t, buildImage(t, source, binary.BigEndian, Size))

	buf := buildImage(t, sampleSuperblock(), binary.LittleEndian, Size)
	v, _ := NewView(buf)
	if err := CloneTimestamp(v, srcPath); err != nil {
		t.Fatalf("CloneTimestamp failed: %v", err)
	}
	if got, want := buf[8:12], []byte{0x01, 0x02, 0x03, 0x04}; !bytes.Equal(got, want) {
		t.Errorf("mkfs_time bytes: got % x, expected % x", got, want)
	}
}

func TestCloneTimestampSourceTooShort(t *testing.T) {
	for _, n := range []int{0, 8, Size - 1} {
		srcPath := writeFile(t, bytes.Repeat([]byte{0xEE}, n))

		buf := patternImage(Size)
		before := append([]byte(nil), buf...)
		v, _ := NewView(buf)

		err := CloneTimestamp(v, srcPath)
		if !errors.Is(err, ErrSourceTooShort) {
			t.Errorf("source of %d bytes: expected ErrSourceTooShort, got %v", n, err)
		}
		if !bytes.Equal(before, buf) {
			t.Errorf("source of %d bytes: target modified", n)
		}
		if v.Mutated() {
			t.Errorf("source of %d bytes: view marked mutated", n)
		}
	}
}

func TestCloneTimestampMissingSource(t *testing.T) {
	buf := patternImage(Size)
	before := append([]byte(nil), buf...)
	v, _ := NewView(buf)

	err := CloneTimestamp(v, filepath.Join(t.TempDir(), "missing.sqsh"))
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Errorf("expected ErrSourceUnreadable, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected the underlying os.ErrNotExist to be wrapped, got %v", err)
	}
	if !bytes.Equal(before, buf) {
		t.Error("target modified")
	}
}

func TestCloneTimestampSourceIsDirectory(t *testing.T) {
	v, _ := NewView(make([]byte, Size))
	err := CloneTimestamp(v, t.TempDir())
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Errorf("expected ErrSourceUnreadable, got %v", err)
	}
}
