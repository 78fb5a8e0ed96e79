// Package protoerrors implements the "protodyn: "-prefixed error
// construction used by wire and protovalue.
//
// Precondition violations (wrong type assigned to a field, invalid map
// key kind, a field descriptor that does not belong to the message it
// is used against) are not represented here: those are panics raised
// directly at the call site, not errors returned up a call chain.
package protoerrors

import "fmt"

// New formats a string according to the format specifier and arguments
// and returns an error with a "protodyn: " prefix.
func New(f string, x ...interface{}) error {
	for i := 0; i < len(x); i++ {
		if e, ok := x[i].(*prefixError); ok {
			x[i] = e.s // avoid double "protodyn: " prefix when chaining
		}
	}
	return &prefixError{s: fmt.Sprintf(f, x...)}
}

type prefixError struct{ s string }

func (e *prefixError) Error() string { return "protodyn: " + e.s }

// Wrapf wraps err with additional context, or returns nil if err is nil.
func Wrapf(err error, f string, x ...interface{}) error {
	if err == nil {
		return nil
	}
	return New("%s: %v", fmt.Sprintf(f, x...), err)
}
