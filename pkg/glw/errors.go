package glw

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies failures of GL object construction and use.
type Kind uint8

const (
	KindInitialization Kind = iota + 1
	KindCompile
	KindLink
	KindResourceLoad
	KindInvalidProgram
	KindDriver
)

var (
	ErrInitialization = errors.New("initialization failed")
	ErrCompile        = errors.New("shader compilation failed")
	ErrLink           = errors.New("program linking failed")
	ErrResourceLoad   = errors.New("resource load failed")
	ErrInvalidProgram = errors.New("invalid program")
	ErrDriver         = errors.New("driver error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindInitialization:
		return ErrInitialization
	case KindCompile:
		return ErrCompile
	case KindLink:
		return ErrLink
	case KindResourceLoad:
		return ErrResourceLoad
	case KindInvalidProgram:
		return ErrInvalidProgram
	case KindDriver:
		return ErrDriver
	}
	return nil
}

func (k Kind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Error is returned by every constructor in this package. Log holds the
// driver's diagnostic text when there is one.
type Error struct {
	Kind  Kind
	Op    string
	Stage ShaderStage
	Log   string
	Err   error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Kind.String())
	if e.Stage != 0 {
		sb.WriteString(" stage:")
		sb.WriteString(e.Stage.String())
	}
	if e.Log != "" {
		sb.WriteString(" what:")
		sb.WriteString(e.Log)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind, so errors.Is(err, ErrCompile)
// works through any amount of wrapping.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf reports the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// NewError builds an *Error for callers outside the package (platform and
// driver layers) that report kinds of their own.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
