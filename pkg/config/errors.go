// Package config parses CheckMate's server and client command lines into
// pkg/server.Config and pkg/client.Config.
package config

import "fmt"

// ArgError is the error taxonomy spec §7 requires for argument parsing
// failures: one human-readable line, no wrapped cause.
type ArgError struct {
	kind argErrorKind
	a, b string
}

type argErrorKind int

const (
	kindNoValueSpecified argErrorKind = iota
	kindInvalidValue
	kindInvalidArgument
)

func (e *ArgError) Error() string {
	switch e.kind {
	case kindNoValueSpecified:
		return fmt.Sprintf("Specify a %s after %s", e.a, e.b)
	case kindInvalidValue:
		return fmt.Sprintf("Invalid %s value specified: %s", e.a, e.b)
	case kindInvalidArgument:
		return fmt.Sprintf("Invalid argument specified: %s", e.a)
	default:
		return "invalid arguments"
	}
}

// errNoValueSpecified reports that option was the last token, missing the
// name it requires.
func errNoValueSpecified(name, option string) *ArgError {
	return &ArgError{kind: kindNoValueSpecified, a: name, b: option}
}

// errInvalidValue reports that value could not be parsed as name.
func errInvalidValue(name, value string) *ArgError {
	return &ArgError{kind: kindInvalidValue, a: name, b: value}
}

// errInvalidArgument reports an unrecognized or misplaced token.
func errInvalidArgument(arg string) *ArgError {
	return &ArgError{kind: kindInvalidArgument, a: arg}
}
