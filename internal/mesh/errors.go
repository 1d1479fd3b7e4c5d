package mesh

import "fmt"

type ErrorKind int

const (
	UnexpectedTopology ErrorKind = iota + 1
	InvalidIndexCount
	MissingPositionAttribute
	UnexpectedPositionFormat
	MissingUvAttribute
	UnexpectedUvFormat
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedTopology:
		return "unexpected topology"
	case InvalidIndexCount:
		return "invalid index count"
	case MissingPositionAttribute:
		return "missing position attribute"
	case UnexpectedPositionFormat:
		return "unexpected position format"
	case MissingUvAttribute:
		return "missing uv attribute"
	case UnexpectedUvFormat:
		return "unexpected uv format"
	}
	return "unknown"
}

// Name is the identifier form of the kind, used as a log label.
func (k ErrorKind) Name() string {
	switch k {
	case UnexpectedTopology:
		return "UnexpectedTopology"
	case InvalidIndexCount:
		return "InvalidIndexCount"
	case MissingPositionAttribute:
		return "MissingPositionAttribute"
	case UnexpectedPositionFormat:
		return "UnexpectedPositionFormat"
	case MissingUvAttribute:
		return "MissingUvAttribute"
	case UnexpectedUvFormat:
		return "UnexpectedUvFormat"
	}
	return "Unknown"
}

// Error is returned by Split. For InvalidIndexCount, Count is the index
// buffer length, or the offending index when OutOfRange is set.
type Error struct {
	Kind       ErrorKind
	Count      int
	OutOfRange bool
	Vertices   int
}

func (e *Error) Error() string {
	if e.Kind != InvalidIndexCount {
		return "mesh: " + e.Kind.String()
	}
	if e.OutOfRange {
		return fmt.Sprintf("mesh: %s: index %d out of range for %d vertices", e.Kind, e.Count, e.Vertices)
	}
	return fmt.Sprintf("mesh: %s %d, not a multiple of 3", e.Kind, e.Count)
}

// Is matches on Kind so callers can compare against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnexpectedTopology       = &Error{Kind: UnexpectedTopology}
	ErrInvalidIndexCount        = &Error{Kind: InvalidIndexCount}
	ErrMissingPositionAttribute = &Error{Kind: MissingPositionAttribute}
	ErrUnexpectedPositionFormat = &Error{Kind: UnexpectedPositionFormat}
	ErrMissingUvAttribute       = &Error{Kind: MissingUvAttribute}
	ErrUnexpectedUvFormat       = &Error{Kind: UnexpectedUvFormat}
)
