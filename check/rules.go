package check

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/moriyoshi/rfc822check/internal/expand"
)

// Grammar names the production an input is checked against.
type Grammar int

const (
	AddrSpec Grammar = iota
	Mailbox
	Address
	MailboxList
	AddressList
	Domain
	IPv4
	IPv6
)

var grammarNames = []string{
	AddrSpec:    "addr-spec",
	Mailbox:     "mailbox",
	Address:     "address",
	MailboxList: "mailbox-list",
	AddressList: "address-list",
	Domain:      "domain",
	IPv4:        "ipv4",
	IPv6:        "ipv6",
}

func (g Grammar) String() string {
	if g < 0 || int(g) >= len(grammarNames) {
		return fmt.Sprintf("Grammar(%d)", int(g))
	}
	return grammarNames[g]
}

// ParseGrammar accepts a grammar name, ignoring case and hyphens, so
// that "address-list", "addresslist" and "Address-List" are the same.
func ParseGrammar(s string) (Grammar, error) {
	k := strings.ReplaceAll(strings.ToLower(s), "-", "")
	for g, n := range grammarNames {
		if k == strings.ReplaceAll(n, "-", "") {
			return Grammar(g), nil
		}
	}
	return 0, fmt.Errorf("unknown grammar %q", s)
}

func (g Grammar) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Grammar) UnmarshalText(b []byte) error {
	v, err := ParseGrammar(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// IsAddress reports whether the grammar is one of the address
// productions, as opposed to a bare domain or IP address.
func (g Grammar) IsAddress() bool {
	return g <= AddressList
}

type HeaderRule struct {
	Header  string
	Grammar Grammar
}

func expander(key string) string {
	if strings.HasPrefix(key, "env.") {
		return os.Getenv(key[4:])
	}
	return ""
}

func newHeaderRule(header, grammar string) (HeaderRule, error) {
	header = expand.Expand(header, expander)
	grammar = expand.Expand(grammar, expander)
	if header == "" {
		return HeaderRule{}, fmt.Errorf("empty header name")
	}
	g, err := ParseGrammar(grammar)
	if err != nil {
		return HeaderRule{}, fmt.Errorf("header %q: %w", header, err)
	}
	if !g.IsAddress() {
		return HeaderRule{}, fmt.Errorf("header %q: grammar %s does not describe an address header", header, g)
	}
	return HeaderRule{Header: header, Grammar: g}, nil
}

func (hr *HeaderRule) UnmarshalStructure(v map[string]interface{}) error {
	if header, ok := v["header"].(string); !ok {
		return fmt.Errorf("key 'header' is not a string")
	} else if grammar, ok := v["grammar"].(string); !ok {
		return fmt.Errorf("key 'grammar' is not a string")
	} else {
		rule, err := newHeaderRule(header, grammar)
		if err != nil {
			return err
		}
		*hr = rule
		return nil
	}
}

func (hr *HeaderRule) UnmarshalJSON(b []byte) error {
	var rule interface{}
	err := json.Unmarshal(b, &rule)
	if err != nil {
		return err
	}

	if rule, ok := rule.(map[string]interface{}); ok {
		return hr.UnmarshalStructure(rule)
	} else {
		return fmt.Errorf("rule is not an object")
	}
}

// HeaderRules tells which header fields of a message are checked and
// against what grammar. It unmarshals from either a mapping of header
// names to grammar names or a list of {header, grammar} objects.
// Values may refer to environment variables as ${env.NAME}.
type HeaderRules []HeaderRule

// DefaultHeaderRules covers the originator and destination fields of
// RFC 5322 section 3.6 along with their Resent- counterparts.
func DefaultHeaderRules() HeaderRules {
	return HeaderRules{
		{Header: "From", Grammar: MailboxList},
		{Header: "Sender", Grammar: Mailbox},
		{Header: "Reply-To", Grammar: AddressList},
		{Header: "To", Grammar: AddressList},
		{Header: "Cc", Grammar: AddressList},
		{Header: "Bcc", Grammar: AddressList},
		{Header: "Resent-From", Grammar: MailboxList},
		{Header: "Resent-Sender", Grammar: Mailbox},
		{Header: "Resent-To", Grammar: AddressList},
		{Header: "Resent-Cc", Grammar: AddressList},
		{Header: "Resent-Bcc", Grammar: AddressList},
	}
}

// Lookup returns the grammar of the first rule for the header name.
func (hrs HeaderRules) Lookup(name string) (Grammar, bool) {
	for _, hr := range hrs {
		if strings.EqualFold(hr.Header, name) {
			return hr.Grammar, true
		}
	}
	return 0, false
}

func (hrs *HeaderRules) UnmarshalJSON(b []byte) error {
	var rules interface{}
	err := json.Unmarshal(b, &rules)
	if err != nil {
		return err
	}
	return hrs.unmarshalInner(rules)
}

func (hrs *HeaderRules) UnmarshalYAML(n *yaml.Node) error {
	var rules interface{}
	err := n.Decode(&rules)
	if err != nil {
		return err
	}
	return hrs.unmarshalInner(rules)
}

func (hrs *HeaderRules) unmarshalInner(rules interface{}) error {
	switch rules := rules.(type) {
	case map[string]interface{}:
		headers := make([]string, 0, len(rules))
		for header := range rules {
			headers = append(headers, header)
		}
		sort.Strings(headers)
		_hrs := make([]HeaderRule, 0, len(rules))
		for _, header := range headers {
			if grammar, ok := rules[header].(string); !ok {
				return fmt.Errorf("value for key %q is not a string", header)
			} else {
				rule, err := newHeaderRule(header, grammar)
				if err != nil {
					return err
				}
				_hrs = append(_hrs, rule)
			}
		}
		*hrs = _hrs
	case []interface{}:
		_hrs := make([]HeaderRule, 0, len(rules))
		for _, r := range rules {
			if r, ok := r.(map[string]interface{}); !ok {
				return fmt.Errorf("rule is not an object")
			} else {
				var hr HeaderRule
				err := hr.UnmarshalStructure(r)
				if err != nil {
					return err
				}
				_hrs = append(_hrs, hr)
			}
		}
		*hrs = _hrs
	default:
		return fmt.Errorf("rules is not an object or an array")
	}
	return nil
}
