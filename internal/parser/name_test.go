package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		typeName  string
		method    string
		arguments string
	}{
		{name: "namespace type method", input: "NS.Sub.TypeName.MethodName", typeName: "NS.Sub.TypeName", method: "MethodName"},
		{name: "type and method only", input: "Type.Method", typeName: "Type", method: "Method"},
		{name: "with arguments", input: "NS.Type.Method(1, 2)", typeName: "NS.Type", method: "Method", arguments: "(1, 2)"},
		{name: "dots inside arguments", input: "NS.Type.Method(1.5, \"a.b\")", typeName: "NS.Type", method: "Method", arguments: "(1.5, \"a.b\")"},
		{name: "surrounding whitespace", input: "  NS.Type.Method ( x )  ", typeName: "NS.Type", method: "Method", arguments: "( x )"},
		{name: "empty argument list", input: "NS.Type.Method()", typeName: "NS.Type", method: "Method", arguments: "()"},
		{name: "generated names", input: "NS.Type+Nested.<Method>b__0", typeName: "NS.Type+Nested", method: "<Method>b__0"},
		{name: "leading dot keeps empty type", input: ".Method", typeName: "", method: "Method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.typeName, parsed.Type)
			assert.Equal(t, tt.method, parsed.Method)
			assert.Equal(t, tt.arguments, parsed.Arguments)
		})
	}
}

func TestParseName_Failures(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{name: "no dot", input: "Method", expected: ErrNoTypeName},
		{name: "no dot with arguments", input: "Method(1)", expected: ErrNoTypeName},
		{name: "empty", input: "", expected: ErrNoTypeName},
		{name: "trailing dot", input: "NS.Type.", expected: ErrEmptyMethodName},
		{name: "unbalanced parenthesis", input: "Type.Method(x", expected: ErrUnterminatedArguments},
		{name: "text after parameter list", input: "Type.Method(x) y", expected: ErrUnterminatedArguments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseName(tt.input)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestParseName_RoundTrip(t *testing.T) {
	names := []string{
		"A.B",
		"NUnit.Xml.TestLogger.Tests2.UnitTest1.PassTest11",
		"NS.Type.Method",
		"a.b.c.d.e.f",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			parsed, err := ParseName(name)
			require.NoError(t, err)
			assert.Equal(t, name, parsed.TypeAndMethod())
		})
	}
}

func TestPrefixAndLastSegment(t *testing.T) {
	assert.Equal(t, "A.B", Prefix("A.B.C"))
	assert.Equal(t, "", Prefix("A"))
	assert.Equal(t, "C", LastSegment("A.B.C"))
	assert.Equal(t, "A", LastSegment("A"))
}
