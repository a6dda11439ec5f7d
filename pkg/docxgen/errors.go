package docxgen

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a render failure
type ErrorKind int

const (
	// UnsupportedElementKind is returned for an element whose Kind the reconciler does not know
	UnsupportedElementKind ErrorKind = iota + 1
	// InvalidStructure is returned when the tree or model violates a structural invariant
	InvalidStructure
	// SerializationError is returned when a part cannot be built as valid XML
	SerializationError
	// PackagingError is returned when the zip archive cannot be assembled
	PackagingError
	// IOError is returned when the destination cannot be written
	IOError
)

func (k ErrorKind) String() string {
	switch k {
	case UnsupportedElementKind:
		return "unsupported element kind"
	case InvalidStructure:
		return "invalid structure"
	case SerializationError:
		return "serialization error"
	case PackagingError:
		return "packaging error"
	case IOError:
		return "io error"
	default:
		return "unknown error"
	}
}

// Sentinel errors for use with errors.Is. Any *Error of the same kind matches.
var (
	ErrUnsupportedElementKind = &Error{Kind: UnsupportedElementKind}
	ErrInvalidStructure       = &Error{Kind: InvalidStructure}
	ErrSerialization          = &Error{Kind: SerializationError}
	ErrPackaging              = &Error{Kind: PackagingError}
	ErrIO                     = &Error{Kind: IOError}
)

// Error is the single failure type returned by the render pipeline
type Error struct {
	Kind ErrorKind
	// Op is the pipeline stage or operation that failed (reconcile, serialize, package, publish)
	Op string
	// Path locates the offending tree node ("Document/Paragraph[0]/Text[1]") or the
	// offending part or file, when there is one
	Path string
	// Node is the offending tree node, when the failure is tied to one
	Node *ElementDescriptor
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" at '%s'", e.Path)
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same Kind, so the sentinel values work with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Path == "" && t.Msg == "" && t.Err == nil
}

// newNodeError creates an error tied to a tree node
func newNodeError(kind ErrorKind, path string, node ElementDescriptor, format string, args ...interface{}) error {
	n := node
	return &Error{
		Kind: kind,
		Op:   "reconcile",
		Path: path,
		Node: &n,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// newError creates an error for a pipeline stage
func newError(kind ErrorKind, op, path string, cause error, format string, args ...interface{}) error {
	return &Error{
		Kind: kind,
		Op:   op,
		Path: path,
		Msg:  fmt.Sprintf(format, args...),
		Err:  cause,
	}
}

// KindOf returns the kind of a render error, or 0 if err is not one
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind checks if an error is a render error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
