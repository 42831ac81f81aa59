package crisp

import "fmt"

// Errno is an error code.
type Errno int

// Possible Errno values
const (
	ErrnoPanic Errno = iota
	ErrnoUnbound
	ErrnoType
	ErrnoNotCallable
	ErrnoMalformed
	ErrnoDivZero
)

var errnoStrings = []string{
	ErrnoPanic:       "PANIC",
	ErrnoUnbound:     "unbound-symbol",
	ErrnoType:        "type-mismatch",
	ErrnoNotCallable: "not-callable",
	ErrnoMalformed:   "malformed",
	ErrnoDivZero:     "division-by-zero",
}

func (n Errno) String() string {
	if int(n) >= len(errnoStrings) {
		return errnoStrings[ErrnoPanic]
	}
	return errnoStrings[n]
}

// Errorf returns a CVal representing an error with the code errno and a
// formatted message.
func Errorf(errno Errno, format string, v ...interface{}) *CVal {
	return &CVal{
		Type:  CError,
		Errno: errno,
		Str:   fmt.Sprintf(format, v...),
	}
}

// berrf constructs an error originating in the named builtin form.
func berrf(name string, errno Errno, format string, v ...interface{}) *CVal {
	return Errorf(errno, "%s: %s", name, fmt.Sprintf(format, v...))
}

// ErrorVal implements the error interface so that errors can be first
// class crisp objects.  The message is stored in the Str field while the
// call stack at the failure point is stored in Stack.
type ErrorVal CVal

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	return e.Str
}

// GoError converts an error value to a native error.  It returns nil when
// v is not an error.
func GoError(v *CVal) error {
	if v.Type != CError {
		return nil
	}
	return (*ErrorVal)(v)
}
