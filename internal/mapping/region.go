// Package mapping owns the shared memory mapping of an image file.
//
// A Region moves through Unopened -> Mapped -> [Mutated] -> Flushed ->
// Unmapped. Close flushes the pages with MS_SYNC only when a mutation was
// recorded, and always unmaps exactly once, even when the flush fails.
package mapping

import (
	"errors"
	"fmt"
)

// Mode selects the access requested when mapping a file.
type Mode int

const (
	ReadOnly Mode = iota
	ReadWrite
)

func (m Mode) String() string {
	if m == ReadWrite {
		return "read-write"
	}
	return "read-only"
}

// State is the life-cycle position of a Region.
type State int

const (
	StateUnopened State = iota
	StateMapped
	StateMutated
	StateFlushed
	StateUnmapped
)

func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateMapped:
		return "mapped"
	case StateMutated:
		return "mutated"
	case StateFlushed:
		return "flushed"
	case StateUnmapped:
		return "unmapped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	ErrReadOnly    = errors.New("region is mapped read-only")
	ErrUnsupported = errors.New("memory mapping is not supported on this platform")
)

// Region is a file mapped MAP_SHARED into memory. It is not safe for
// concurrent use.
type Region struct {
	path  string
	mode  Mode
	data  []byte
	state State
}

// Path returns the mapped file's path.
func (r *Region) Path() string {
	return r.path
}

// Mode returns the access the region was mapped with.
func (r *Region) Mode() Mode {
	return r.mode
}

// State returns the region's life-cycle state.
func (r *Region) State() State {
	return r.state
}

// Len returns the mapped length, which is the file length at Open.
func (r *Region) Len() int {
	return len(r.data)
}

// Bytes returns the mapped memory. The slice is invalid after Close.
func (r *Region) Bytes() []byte {
	return r.data
}

// Mutated reports whether a write was recorded since Open.
func (r *Region) Mutated() bool {
	return r.state == StateMutated
}

// MarkMutated records that the mapped bytes were written. It panics on a
// read-only region: a store into a PROT_READ mapping has already faulted.
func (r *Region) MarkMutated() {
	switch r.state {
	case StateMapped:
		if r.mode != ReadWrite {
			panic(ErrReadOnly)
		}
		r.state = StateMutated
	case StateMutated:
	default:
		panic(fmt.Errorf("mapping: mutation recorded in state %s", r.state))
	}
}

// Close flushes the region if it was mutated and then unmaps it. A flush
// error is returned together with any unmap error; the unmap is attempted
// regardless. Calling Close again is a no-op.
func (r *Region) Close() error {
	if r.state == StateUnmapped || r.state == StateUnopened {
		return nil
	}

	var flushErr error
	if r.state == StateMutated {
		flushErr = r.flush()
		if flushErr == nil {
			r.state = StateFlushed
		}
	}

	unmapErr := r.unmap()
	r.data = nil
	r.state = StateUnmapped
	return errors.Join(flushErr, unmapErr)
}
