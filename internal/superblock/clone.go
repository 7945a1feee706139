package superblock

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// CloneTimestamp copies mkfs_time from the superblock of the image at
// sourcePath into v.
//
// The source is read once through its own file handle, closed before the
// target is touched. The four bytes are copied as stored: no byte order
// conversion is applied, so source and target are assumed to share one.
func CloneTimestamp(v *View, sourcePath string) error {
	src, err := readSource(sourcePath)
	if err != nil {
		return err
	}
	f := MkfsTimeField()
	return v.WriteField(f, src[f.Offset:f.End()])
}

func readSource(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	defer file.Close()

	buf := make([]byte, Size)
	n, err := io.ReadFull(file, buf)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return nil, fmt.Errorf("%w: %s: %d < %d", ErrSourceTooShort, path, n, Size)
	case err != nil:
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, path, err)
	}
	return buf, nil
}
