package squashfs

import (
	"encoding/binary"

	binpkg "github.com/ecnx/squtil/internal/binary"
)

// Option configures an operation.
type Option func(*options)

type options struct {
	order binary.ByteOrder
}

func defaultOptions() *options {
	return &options{
		order: binpkg.HostOrder(),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithByteOrder sets the byte order the image's fields are stored in.
// The default is the host's byte order.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		if order != nil {
			o.order = order
		}
	}
}

func (o *options) swap() bool {
	return binpkg.Swap(o.order)
}
