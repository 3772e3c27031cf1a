package check

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	yaml "gopkg.in/yaml.v3"
)

func TestHeaderRulesUnmarshal(t *testing.T) {
	t.Setenv("RFC822CHECK_TEST_HEADER", "Foo")
	t.Setenv("RFC822CHECK_TEST_GRAMMAR", "")
	{
		var hrs HeaderRules
		err := json.Unmarshal([]byte(`[{"header": "X-${env.RFC822CHECK_TEST_HEADER}", "grammar": "${env.RFC822CHECK_TEST_GRAMMAR:-mailbox}"}]`), &hrs)
		if !assert.NoError(t, err) {
			t.FailNow()
		}
		assert.Equal(t, HeaderRules{{Header: "X-Foo", Grammar: Mailbox}}, hrs)
	}
	{
		var hrs HeaderRules
		err := json.Unmarshal([]byte(`{"To": "addresslist", "From": "mailbox-list"}`), &hrs)
		if !assert.NoError(t, err) {
			t.FailNow()
		}
		assert.Equal(t, HeaderRules{{Header: "From", Grammar: MailboxList}, {Header: "To", Grammar: AddressList}}, hrs)
	}
	{
		var hrs HeaderRules
		err := yaml.Unmarshal([]byte("- header: X-${env.RFC822CHECK_TEST_HEADER}\n  grammar: addr-spec\n"), &hrs)
		if !assert.NoError(t, err) {
			t.FailNow()
		}
		assert.Equal(t, HeaderRules{{Header: "X-Foo", Grammar: AddrSpec}}, hrs)
	}
	{
		var hrs HeaderRules
		err := yaml.Unmarshal([]byte("Sender: mailbox\nDelivered-To: Address\n"), &hrs)
		if !assert.NoError(t, err) {
			t.FailNow()
		}
		assert.Equal(t, HeaderRules{{Header: "Delivered-To", Grammar: Address}, {Header: "Sender", Grammar: Mailbox}}, hrs)
	}
}

func TestHeaderRulesUnmarshalErrors(t *testing.T) {
	t.Parallel()

	cases := []string{
		`{"To": "addresses"}`,
		`{"To": "domain"}`,
		`{"To": 1}`,
		`[{"header": "To"}]`,
		`[{"header": "", "grammar": "mailbox"}]`,
		`["To"]`,
		`"To"`,
	}
	for i, c := range cases {
		var hrs HeaderRules
		assert.Error(t, json.Unmarshal([]byte(c), &hrs), "#%d", i)
		assert.Error(t, yaml.Unmarshal([]byte(c), &hrs), "#%d", i)
	}
}

func TestHeaderRulesLookup(t *testing.T) {
	t.Parallel()

	hrs := DefaultHeaderRules()
	g, ok := hrs.Lookup("reply-to")
	assert.True(t, ok)
	assert.Equal(t, AddressList, g)
	g, ok = hrs.Lookup("SENDER")
	assert.True(t, ok)
	assert.Equal(t, Mailbox, g)
	_, ok = hrs.Lookup("Subject")
	assert.False(t, ok)
}

func TestParseGrammar(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		exp   Grammar
	}{
		{"addrspec", AddrSpec},
		{"addr-spec", AddrSpec},
		{"Mailbox", Mailbox},
		{"address", Address},
		{"mailboxlist", MailboxList},
		{"address-list", AddressList},
		{"domain", Domain},
		{"IPv4", IPv4},
		{"ipv6", IPv6},
	}
	for _, c := range cases {
		g, err := ParseGrammar(c.input)
		if assert.NoError(t, err, c.input) {
			assert.Equal(t, c.exp, g, c.input)
		}
	}
	_, err := ParseGrammar("fqdn")
	assert.Error(t, err)
	assert.Equal(t, "address-list", AddressList.String())
	assert.Equal(t, "Grammar(42)", Grammar(42).String())
	assert.True(t, AddressList.IsAddress())
	assert.False(t, Domain.IsAddress())
}
