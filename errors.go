package sqpack

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Kind classifies the ways a read against a SqPack archive can fail.
//
// Callers should match on Kind (via errors.Is against the sentinel Err*
// values, or by using errors.As to get the *Error and inspecting Kind)
// rather than on error
// strings.
type Kind int

const (
	// KindUnsupportedPlatform indicates a header named the console
	// (PS3) platform. Fatal; the archive cannot be read at all.
	KindUnsupportedPlatform Kind = iota + 1
	// KindNotFound indicates the requested hash has no entry in the
	// merged repository index.
	KindNotFound
	// KindEmptyAsset indicates the located FileInfo is of type Empty.
	KindEmptyAsset
	// KindUnimplemented indicates a recognized but unhandled FileInfo
	// type (Model or Texture).
	KindUnimplemented
	// KindMissingDataFile indicates an index entry names a data file id
	// that was never discovered on disk.
	KindMissingDataFile
	// KindInflateError indicates a raw deflate stream failed to decode.
	KindInflateError
	// KindIoError indicates a short read, a seek past EOF, or a missing
	// version file.
	KindIoError
	// KindMalformedHeader indicates a decoded length or type value
	// violates one of the format's invariants.
	KindMalformedHeader
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedPlatform:
		return "unsupported platform"
	case KindNotFound:
		return "not found"
	case KindEmptyAsset:
		return "empty asset"
	case KindUnimplemented:
		return "unimplemented"
	case KindMissingDataFile:
		return "missing data file"
	case KindInflateError:
		return "inflate error"
	case KindIoError:
		return "io error"
	case KindMalformedHeader:
		return "malformed header"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type returned by every fallible operation in
// this package. It carries the Kind (for errors.Is-style matching), enough
// context to locate the failure (an offset, a hash, or a path, whichever
// applies), and the underlying cause if there was one.
type Error struct {
	Kind   Kind
	Offset int64  // byte offset into a data file, when applicable
	Hash   uint64 // index hash, when applicable
	Path   string // logical path, when applicable
	Cause  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	switch {
	case e.Path != "":
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	case e.Hash != 0:
		msg = fmt.Sprintf("%s: hash 0x%016x", msg, e.Hash)
	case e.Offset != 0:
		msg = fmt.Sprintf("%s: offset 0x%x", msg, e.Offset)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is the sentinel Err* value matching e.Kind,
// so callers can write errors.Is(err, sqpack.ErrNotFound).
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	if te.Cause != nil || te.Path != "" || te.Hash != 0 || te.Offset != 0 {
		return false
	}
	return e.Kind == te.Kind
}

// Sentinel errors for use with errors.Is. Each carries only a Kind; compare
// against these, never construct a new *Error and compare by value.
var (
	ErrUnsupportedPlatform = &Error{Kind: KindUnsupportedPlatform}
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrEmptyAsset          = &Error{Kind: KindEmptyAsset}
	ErrUnimplemented       = &Error{Kind: KindUnimplemented}
	ErrMissingDataFile     = &Error{Kind: KindMissingDataFile}
	ErrInflateError        = &Error{Kind: KindInflateError}
	ErrIoError             = &Error{Kind: KindIoError}
	ErrMalformedHeader     = &Error{Kind: KindMalformedHeader}
)

// wrapf builds an *Error of the given kind, wrapping cause (if any) with
// xerrors.Errorf so that %w-chains and stack-trace-capable formatting
// survive, the way cmd/distri wraps every external-command failure.
func wrapf(kind Kind, cause error, format string, args ...interface{}) *Error {
	var wrapped error
	if cause != nil {
		wrapped = xerrors.Errorf(format+": %w", append(args, cause)...)
	} else if format != "" {
		wrapped = xerrors.Errorf(format, args...)
	}
	return &Error{Kind: kind, Cause: wrapped}
}
