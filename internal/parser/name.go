package parser

import (
	"errors"
	"strings"
)

var (
	// ErrNoTypeName is returned for names without a dot separating type and method
	ErrNoTypeName = errors.New("no type name")
	// ErrEmptyMethodName is returned for names ending in a dot
	ErrEmptyMethodName = errors.New("empty method name")
	// ErrUnterminatedArguments is returned when the parameter list is not closed
	ErrUnterminatedArguments = errors.New("unterminated parameter list")
)

// TestName is a fully-qualified test name split into its parts
type TestName struct {
	Type      string // Namespace and type, e.g. NS.Sub.TypeName
	Method    string // Method name without arguments
	Arguments string // Parameter list including the parentheses, or ""
}

// TypeAndMethod rebuilds the "type.method" part of the name
func (n TestName) TypeAndMethod() string {
	return n.Type + "." + n.Method
}

// ParseName splits a fully-qualified test name like NS.Type.Method(1, "a").
// Parsing is positional only; identifier characters are not validated.
func ParseName(fullyQualifiedName string) (TestName, error) {
	typeAndMethod := strings.TrimSpace(fullyQualifiedName)
	arguments := ""

	if idx := strings.IndexByte(typeAndMethod, '('); idx >= 0 {
		arguments = strings.TrimSpace(typeAndMethod[idx:])
		typeAndMethod = strings.TrimSpace(typeAndMethod[:idx])
		if !strings.HasSuffix(arguments, ")") {
			return TestName{}, ErrUnterminatedArguments
		}
	}

	dot := strings.LastIndexByte(typeAndMethod, '.')
	if dot < 0 {
		return TestName{}, ErrNoTypeName
	}

	method := typeAndMethod[dot+1:]
	if method == "" {
		return TestName{}, ErrEmptyMethodName
	}

	return TestName{
		Type:      typeAndMethod[:dot],
		Method:    method,
		Arguments: arguments,
	}, nil
}

// LastSegment returns the part of a dotted name after the last dot
func LastSegment(name string) string {
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// Prefix returns a dotted name without its last segment, or "" when there is no dot
func Prefix(name string) string {
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		return name[:idx]
	}
	return ""
}
