package domain

import "fmt"

// ErrorKind classifies failures that callers are expected to handle.
type ErrorKind int

const (
	KindBadRequest ErrorKind = iota + 1
	KindUnauthorized
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad request"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is a classified domain failure. Two errors match under errors.Is
// when their kinds are equal, so callers compare against the sentinels below.
type Error struct {
	Kind    ErrorKind
	Message string
}

var (
	ErrBadRequest   = &Error{Kind: KindBadRequest, Message: "Bad Request"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "Not Found"}
)

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func BadRequest(format string, args ...any) error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}
