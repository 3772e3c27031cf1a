package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeNonPrintASCII(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		exp   string
	}{
		0: {"a@example.com", "a@example.com"},
		1: {"a\r\n b", `a\u000D\u000A b`},
		2: {"jörg", `j\u00F6rg`},
		3: {"🐈", `\U0001F408`},
		4: {"\x7f", `\u007F`},
		5: {"", ""},
	}
	for i, c := range cases {
		assert.Equal(t, c.exp, EscapeNonPrintASCII(c.input), "#%d", i)
	}
}

func TestTrim(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b", Trim(" \t a b\r\n"))
	assert.Equal(t, "", Trim("   "))
	assert.Equal(t, "\u00a0x\u00a0", Trim(" \u00a0x\u00a0 "))
	assert.Equal(t, "x", Trim("x"))
}
