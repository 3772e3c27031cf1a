package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	assert.Equal(t, "foo", Expand("${foo}", func(s string) string { return s }))
	assert.Equal(t, "<env.HOME>", Expand("<${env.HOME}>", func(s string) string { return s }))
	assert.Equal(t, "address-list", Expand("${env.X:-address-list}", func(string) string { return "" }))
	assert.Equal(t, "mailbox", Expand("${env.X:-address-list}", func(string) string { return "mailbox" }))
	assert.Equal(t, "", Expand("${env.X}", func(string) string { return "" }))
	assert.Equal(t, "$foo {bar}", Expand("$foo {bar}", func(string) string { return "x" }))
}
