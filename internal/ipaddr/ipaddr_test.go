package ipaddr

import (
	"fmt"
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestV4Invalid(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		" ",
		"0",
		"0.0",
		"0.0.0",
		"0.0.0.",
		"0.0.0.0a",
		"0.0.0.00",
		"00.0.0.0",
		"01.2.3.4",
		"256.0.0.0",
		"260.0.0.0",
		"300.0.0.0",
		"400.0.0.0",
		"500.0.0.0",
		"600.0.0.0",
		"700.0.0.0",
		"800.0.0.0",
		"900.0.0.0",
		"1000.0.0.0",
		"1.2.3.4.5",
		"-",
		"0-",
		"1-",
		"20-",
		" 1.2.3.4",
		"1.2.3.4 ",
		"１.2.3.4",
	}
	for i, c := range cases {
		_, ok := V4(c)
		assert.False(t, ok, "V4(%q) #%d", c, i)
	}
	assert.Nil(t, New(strings.Repeat(" ", MaxLength+1)))
	assert.NotNil(t, New(strings.Repeat(" ", MaxLength)))
}

func TestV4Enumeration(t *testing.T) {
	t.Parallel()

	for o := 0; o < 256; o++ {
		for pos := 0; pos < 4; pos++ {
			octets := []any{1, 2, 3, 4}
			octets[pos] = o
			s := fmt.Sprintf("%d.%d.%d.%d", octets...)
			b, ok := V4(s)
			if assert.True(t, ok, "V4(%q)", s) {
				assert.Equal(t, s, netip.AddrFrom4(b).String())
			}
		}
	}
}

func TestV6Invalid(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		":",
		":1",
		"1:",
		"::%em0",
		"fe80::1%eth0",
		"::g",
		"::ffff:1.270.3.4",
		"0:0",
		"0:0:0:0:0:0:0",
		"0:0:0:0:0:0:0:0:0",
		"0:::",
		":::",
		"1ffff::",
		"10000::",
		"fd00::0xc",
		"fd00::40e/64",
		"ff::ff::ff",
		"ff:::ff",
		"1:2:3:4:5:6:7:8.9.10.11",
		"1:2:3:4:5:8.9.10.11",
		"1:2:3:4:5:6",
		"1:2:3:4:5:1.2.3.4",
		"1:2:3:4:5:6:7:1.2.3.4",
		"1:2:3:4:5:6:7:8:",
		"1:2:3:4:5:6:7:8::",
		"1:2:3:4::5:6:7:8",
		"::1.2.3.4:5",
		"111.222.333.444",
		"2.3.4.5",
		"[::1]",
	}
	for i, c := range cases {
		_, ok := V6(c)
		assert.False(t, ok, "V6(%q) #%d", c, i)
	}
}

func TestV6Valid(t *testing.T) {
	t.Parallel()

	cases := []string{
		"::",
		"::1",
		"1::",
		"2001:db8::1",
		"2001:DB8::Cafe:1",
		"2001:0db8:0000:0000:0000:ff00:0042:8329",
		"::ffff:1.2.3.4",
		"::1.2.3.4",
		"1:2:3:4:5::1.2.3.4",
		"1:2:3:4:5:6:1.2.3.4",
		"2001:db8:8a2e:370:7334::",
		"::1:2:3:4:5",
		"1:2:3:4:5:6:7::",
		"::2:3:4:5:6:7:8",
		"fe80::1:2",
		"0:0:0:0:0:0:0:0",
	}
	for i, c := range cases {
		b, ok := V6(c)
		if assert.True(t, ok, "V6(%q) #%d", c, i) {
			assert.Equal(t, netip.MustParseAddr(c).As16(), b, "V6(%q) #%d", c, i)
		}
	}
}

func TestParserReuse(t *testing.T) {
	t.Parallel()

	p := New("::ffff:10.0.0.1")
	b6, ok := p.V6()
	assert.True(t, ok)
	assert.Equal(t, byte(10), b6[12])
	_, ok = p.V4()
	assert.False(t, ok)
	b6again, ok := p.V6()
	assert.True(t, ok)
	assert.Equal(t, b6, b6again)
}
