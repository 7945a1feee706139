//go:build unix

package mapping

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/sys/unix"

	"github.com/ecnx/squtil/internal/logger"
)

// Replaced in tests to simulate storage failures.
var (
	msync  = unix.Msync
	munmap = unix.Munmap
)

// Open maps the whole of the file at path with MAP_SHARED. The file
// descriptor is closed once the mapping exists. An empty file yields a
// region of length zero with nothing mapped.
func Open(path string, mode Mode) (*Region, error) {
	flag, prot := os.O_RDONLY, unix.PROT_READ
	if mode == ReadWrite {
		flag, prot = os.O_RDWR, unix.PROT_READ|unix.PROT_WRITE
	}

	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("measuring image: %w", err)
	}
	size := fi.Size()
	if size > math.MaxInt {
		return nil, fmt.Errorf("mapping image: %w", &os.PathError{Op: "mmap", Path: path, Err: unix.EFBIG})
	}

	r := &Region{path: path, mode: mode, state: StateMapped}
	if size == 0 {
		logger.Debug("mapping %s: empty file, nothing mapped", path)
		return r, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), prot, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mapping image: %w", &os.PathError{Op: "mmap", Path: path, Err: err})
	}
	r.data = data
	logger.Debug("mapped %s %s: %d bytes", path, mode, size)
	return r, nil
}

func (r *Region) flush() error {
	if len(r.data) == 0 {
		return nil
	}
	if err := msync(r.data, unix.MS_SYNC); err != nil {
		logger.Error("msync %s: %v", r.path, err)
		return fmt.Errorf("flushing image: %w", &os.PathError{Op: "msync", Path: r.path, Err: err})
	}
	logger.Debug("flushed %s: %d bytes", r.path, len(r.data))
	return nil
}

func (r *Region) unmap() error {
	if len(r.data) == 0 {
		return nil
	}
	if err := munmap(r.data); err != nil {
		logger.Error("munmap %s: %v", r.path, err)
		return fmt.Errorf("unmapping image: %w", &os.PathError{Op: "munmap", Path: r.path, Err: err})
	}
	logger.Debug("unmapped %s", r.path)
	return nil
}
