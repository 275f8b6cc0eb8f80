// Package mcerrors defines the sentinel error values returned by every
// pricing and simulation routine in this module.
package mcerrors

import "errors"

// Sentinel errors mirroring the four-way taxonomy of the reference engine:
// success has no sentinel (nil error), the other three are these values.
var (
	ErrOutOfMemory     = errors.New("mcengine: allocation would exceed configured size ceiling")
	ErrInvalidArgument = errors.New("mcengine: invalid numeric argument")
	ErrThreading       = errors.New("mcengine: worker goroutine failed to complete")

	// ErrDimensionUnsupported is returned by the Sobol generator for
	// dimensions beyond the tabulated direction-number range.
	ErrDimensionUnsupported = errors.New("mcengine: sobol dimension exceeds tabulated range")
)

// Code is the last-error slot value stored on a Context, kept alongside the
// returned error for callers porting a null-tolerant, sentinel-return style.
type Code int

const (
	CodeSuccess Code = iota
	CodeOutOfMemory
	CodeInvalidArgument
	CodeThreading
)

func (c Code) String() string {
	switch c {
	case CodeSuccess:
		return "success"
	case CodeOutOfMemory:
		return "out of memory"
	case CodeInvalidArgument:
		return "invalid argument"
	case CodeThreading:
		return "threading error"
	default:
		return "unknown error"
	}
}

// CodeFor maps a sentinel error to its Code, for populating a Context's
// last-error slot from a returned error.
func CodeFor(err error) Code {
	switch {
	case err == nil:
		return CodeSuccess
	case errors.Is(err, ErrOutOfMemory):
		return CodeOutOfMemory
	case errors.Is(err, ErrInvalidArgument):
		return CodeInvalidArgument
	case errors.Is(err, ErrThreading):
		return CodeThreading
	default:
		return CodeInvalidArgument
	}
}
