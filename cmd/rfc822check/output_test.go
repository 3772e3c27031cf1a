package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moriyoshi/rfc822check/check"
)

func TestWriteOverview(t *testing.T) {
	t.Parallel()

	c, err := check.NewChecker(nil)
	require.NoError(t, err)

	cases := []struct {
		input string
		exp   string
	}{
		{
			"a@example.com",
			"‣ a@example.com\n" +
				"\taddr-spec ✔  mailbox-list ✔  address-list ✔  FQDN ✘  IPv6 ✘  IPv4 ✘\n" +
				"\teMail: a@example.com\n\n",
		},
		{
			"b@[x]",
			"‣ b@[x]\n" +
				"\taddr-spec ~  mailbox-list ~  address-list ~  FQDN ✘  IPv6 ✘  IPv4 ✘\n\n",
		},
		{
			"192.0.2.1",
			"‣ 192.0.2.1\n" +
				"\taddr-spec ✘  (no list) mailbox ✘  address ✘  FQDN ✔  IPv6 ✘  IPv4 ✔\n" +
				"\tIP: 192.0.2.1\n" +
				"\tFQDN: 192.0.2.1\n\n",
		},
		{
			"a\tb",
			"‣ a\\u0009b\n" +
				"\taddr-spec ✘  (no list) mailbox ✘  address ✘  FQDN ✘  IPv6 ✘  IPv4 ✘\n\n",
		},
	}
	for _, cs := range cases {
		var b strings.Builder
		require.NoError(t, writeOverview(&b, newPalette(false), c.Overview(cs.input)))
		assert.Equal(t, cs.exp, b.String(), cs.input)
	}

	var b strings.Builder
	require.NoError(t, writeOverview(&b, newPalette(true), c.Overview("a@example.com")))
	assert.Contains(t, b.String(), "\x1b[32m✔\x1b[0m")
	assert.Contains(t, b.String(), "\teMail: \x1b[1ma@example.com\x1b[0m\n")
}

var testReports = []check.HeaderReport{
	{
		Name:      "To",
		Value:     "a@example.com, b@[x]",
		Grammar:   check.AddressList,
		Status:    check.StatusInvalid,
		Canonical: "a@example.com, b@[x]",
		Invalids:  "b@[x]",
	},
	{
		Name:    "Cc",
		Value:   ":::",
		Grammar: check.AddressList,
		Status:  check.StatusUnparseable,
		Error:   `":::" is not an address-list: does not parse`,
	},
}

func TestWriteHeaderReports(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	require.NoError(t, writeHeaderReports(&b, "text", testReports))
	assert.Equal(t, "To: invalid (address-list)\n"+
		"\ta@example.com, b@[x]\n"+
		"\tinvalid: b@[x]\n"+
		"Cc: unparseable (address-list)\n"+
		"\t\":::\" is not an address-list: does not parse\n", b.String())

	b.Reset()
	require.NoError(t, writeHeaderReports(&b, "json", testReports[1:]))
	assert.JSONEq(t, `[{"name": "Cc", "value": ":::", "grammar": "address-list", "status": "unparseable", "error": "\":::\" is not an address-list: does not parse"}]`, b.String())

	b.Reset()
	require.NoError(t, writeHeaderReports(&b, "yaml", testReports[:1]))
	assert.YAMLEq(t, "- name: To\n  value: a@example.com, b@[x]\n  grammar: address-list\n  status: invalid\n  canonical: a@example.com, b@[x]\n  invalids: b@[x]\n", b.String())

	b.Reset()
	require.NoError(t, writeHeaderReports(&b, "json", nil))
	assert.JSONEq(t, `[]`, b.String())

	assert.Error(t, writeHeaderReports(&b, "xml", testReports))
}

func TestWriteMessageReports(t *testing.T) {
	t.Parallel()

	reports := []check.MessageReport{
		{Index: 0, Headers: testReports[:1]},
		{Index: 1, Error: "broken"},
	}
	var b strings.Builder
	require.NoError(t, writeMessageReports(&b, "text", reports))
	assert.Equal(t, "message 0:\n"+
		"\tTo: invalid (address-list)\n"+
		"\t\ta@example.com, b@[x]\n"+
		"\t\tinvalid: b@[x]\n"+
		"message 1:\n"+
		"\terror: broken\n", b.String())

	b.Reset()
	require.NoError(t, writeMessageReports(&b, "json", reports[1:]))
	assert.JSONEq(t, `[{"index": 1, "error": "broken"}]`, b.String())
}

func TestReadInputs(t *testing.T) {
	t.Parallel()

	inputs, err := readInputs([]string{"a", "-", "b"}, strings.NewReader(" x@example.com \r\n\n\u00a0y\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "x@example.com", "\u00a0y", "b"}, inputs)
}

func TestVerdict(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input   string
		grammar check.Grammar
		exp     int
	}{
		{"a@example.com", check.AddrSpec, exitOK},
		{"a@", check.AddrSpec, exitUnparseable},
		{"a@[x]", check.AddrSpec, exitInvalid},
		{"example.com", check.Domain, exitOK},
		{"-example.com", check.Domain, exitBadInput},
		{"256.0.0.1", check.IPv4, exitBadInput},
		{"::", check.IPv6, exitOK},
	}
	for _, c := range cases {
		r := check.Check(c.input, c.grammar)
		assert.Equal(t, c.exp, verdict(&r), c.input)
	}
}
