package surderr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// enableDebugErrorPrinting makes FormatWithCode include the frame that created the error
const enableDebugErrorPrinting bool = false

type ErrCode int

const (
	None ErrCode = iota
	IncompatibleRadicals
	NotAnEquation
	Overflow
	MalformedInput
	DivisionByZero
	NegativeEvenRoot
	IrrationalExponent
)

func (c ErrCode) String() string {
	switch c {
	case None:
		return "None"
	case IncompatibleRadicals:
		return "IncompatibleRadicals"
	case NotAnEquation:
		return "NotAnEquation"
	case Overflow:
		return "Overflow"
	case MalformedInput:
		return "MalformedInput"
	case DivisionByZero:
		return "DivisionByZero"
	case NegativeEvenRoot:
		return "NegativeEvenRoot"
	case IrrationalExponent:
		return "IrrationalExponent"
	default:
		return fmt.Sprintf("ErrCode(%d)", int(c))
	}
}

// Error is the single error type produced by the engine.
// Offset is the byte offset into the parsed input for MalformedInput, and -1 otherwise.
type Error struct {
	code   ErrCode
	Msg    string
	Offset int
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Code() ErrCode { return e.code }

// Is lets errors.Is match on the code alone, so callers can compare against the sentinels below.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.code == e.code
}

var (
	ErrIncompatibleRadicals = &Error{code: IncompatibleRadicals, Msg: "incompatible radicals", Offset: -1}
	ErrNotAnEquation        = &Error{code: NotAnEquation, Msg: "not an equation", Offset: -1}
	ErrOverflow             = &Error{code: Overflow, Msg: "integer overflow", Offset: -1}
	ErrMalformedInput       = &Error{code: MalformedInput, Msg: "malformed input", Offset: -1}
	ErrDivisionByZero       = &Error{code: DivisionByZero, Msg: "division by zero", Offset: -1}
	ErrNegativeEvenRoot     = &Error{code: NegativeEvenRoot, Msg: "even root of a negative number", Offset: -1}
	ErrIrrationalExponent   = &Error{code: IrrationalExponent, Msg: "irrational exponent", Offset: -1}
)

// New returns an error of the given code annotated with the stack at the call site
func New(code ErrCode, format string, args ...any) error {
	return errors.WithStack(&Error{
		code:   code,
		Msg:    fmt.Sprintf(format, args...),
		Offset: -1,
	})
}

// NewAt is New for MalformedInput-style errors that point into the input
func NewAt(code ErrCode, offset int, format string, args ...any) error {
	return errors.WithStack(&Error{
		code:   code,
		Msg:    fmt.Sprintf(format, args...),
		Offset: offset,
	})
}

// CodeOf returns the ErrCode carried by err, or None if err was not produced by this package
func CodeOf(err error) ErrCode {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return None
}

func Is(err error, code ErrCode) bool {
	return err != nil && CodeOf(err) == code
}

func FormatWithCode(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	msg := e.Msg
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s (at offset %d)", msg, e.Offset)
	}
	if enableDebugErrorPrinting {
		// %+v on a pkg/errors value prints the message followed by the stack, one frame per two lines
		lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
		if len(lines) > 2 {
			return fmt.Sprintf("%s:(E%03d) %s", strings.TrimSpace(lines[2]), e.code, msg)
		}
	}
	return fmt.Sprintf("(E%03d) %s", e.code, msg)
}
