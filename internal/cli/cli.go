// Package cli implements the squtil command line.
package cli

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ecnx/squtil/internal/config"
	"github.com/ecnx/squtil/squashfs"
)

// Exit codes. Each failure class is reported with its own code.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitUsage        = 1
	ExitUnknownField = 2
	ExitMalformed    = 3
	ExitTooShort     = 4
	ExitSource       = 5
	ExitStorage      = 6
)

const usage = `usage: squtil option [endian] file args...

options:
  -h           show help message
  -i           show superblock information
  -e name val  edit superblock data
  -t srcfile   clone superblock mkfs time

endians:
  -le          little endian
  -be          big endian
  (default: host byte order, or $SQUTIL_ENDIAN)

`

// Run executes one squtil invocation and returns the process exit code.
// args excludes the program name.
func Run(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	if len(args) >= 1 && args[0] == "-h" {
		fmt.Fprint(stdout, usage)
		return ExitOK
	}
	if len(args) < 2 || len(args[0]) != 2 || args[0][0] != '-' {
		return showUsage(stderr)
	}

	op := args[0][1]
	rest := args[1:]

	endian := cfg.Endian
	switch rest[0] {
	case "-le":
		endian = config.EndianLittle
		rest = rest[1:]
	case "-be":
		endian = config.EndianBig
		rest = rest[1:]
	default:
		if len(rest[0]) > 0 && rest[0][0] == '-' {
			return showUsage(stderr)
		}
	}
	if len(rest) < 1 {
		return showUsage(stderr)
	}

	path := rest[0]
	opts := []squashfs.Option{squashfs.WithByteOrder(byteOrder(endian))}

	var err error
	switch op {
	case 'i':
		err = squashfs.Inspect(path, stdout, opts...)
	case 'e':
		if len(rest) < 3 {
			return showUsage(stderr)
		}
		name, arg := rest[1], rest[2]
		if err = squashfs.EditFieldLiteral(path, name, arg, opts...); err == nil {
			fmt.Fprintf(stdout, "superblock edit: %s => %s (ok)\n", name, arg)
		}
	case 't':
		if len(rest) < 2 {
			return showUsage(stderr)
		}
		if err = squashfs.CloneTime(path, rest[1]); err == nil {
			fmt.Fprintln(stdout, "mkfs time cloned.")
		}
	default:
		return showUsage(stderr)
	}

	if err != nil {
		fmt.Fprintf(stderr, "squtil: %v\n", err)
		fmt.Fprintln(stdout, "operation failed.")
		return ExitCode(err)
	}
	return ExitOK
}

// ExitCode maps an operation error to its exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, squashfs.ErrUnknownField):
		return ExitUnknownField
	case errors.Is(err, squashfs.ErrMalformedValue):
		return ExitMalformed
	case errors.Is(err, squashfs.ErrTooShort):
		return ExitTooShort
	case errors.Is(err, squashfs.ErrSourceTooShort), errors.Is(err, squashfs.ErrSourceUnreadable):
		return ExitSource
	case errors.Is(err, squashfs.ErrStorage):
		return ExitStorage
	default:
		return ExitFailure
	}
}

func byteOrder(e config.Endian) binary.ByteOrder {
	switch e {
	case config.EndianLittle:
		return binary.LittleEndian
	case config.EndianBig:
		return binary.BigEndian
	default:
		return nil
	}
}

func showUsage(w io.Writer) int {
	fmt.Fprint(w, usage)
	return ExitUsage
}
