package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text is untouched", input: "Assert.AreEqual failed", expected: "Assert.AreEqual failed"},
		{name: "tabs and newlines are kept", input: "a\tb\r\nc", expected: "a\tb\r\nc"},
		{name: "escape character", input: "color \x1b[31mred", expected: `color \u001b[31mred`},
		{name: "null byte", input: "a\x00b", expected: `a\u0000b`},
		{name: "vertical tab and form feed", input: "\v\f", expected: `\u000b\u000c`},
		{name: "non-ascii is kept", input: "héllo ✓", expected: "héllo ✓"},
		{name: "non-character U+FFFE", input: "x\uFFFEy", expected: `x\ufffey`},
		{name: "invalid utf-8 bytes", input: "bad\xff\x01x", expected: `bad\u00ff\u0001x`},
		{name: "truncated multi-byte sequence", input: "a\xe2\x9cb", expected: `a\u00e2\u009cb`},
		{name: "replacement character is kept", input: "a\uFFFDb", expected: "a\uFFFDb"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, XML(tt.input))
		})
	}
}
