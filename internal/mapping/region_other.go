//go:build !unix

package mapping

// Open always fails on platforms without mmap(2).
func Open(path string, mode Mode) (*Region, error) {
	return nil, ErrUnsupported
}

func (r *Region) flush() error { return ErrUnsupported }

func (r *Region) unmap() error { return nil }
