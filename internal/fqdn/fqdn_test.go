package fqdn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	label63 = "abcdefghijklmnopqrstuvwxyz0123456789abcdefghijklmnopqrstuvwxyz0"
	label61 = "abcdefghijklmnopqrstuvwxyz0123456789abcdefghijklmnopqrstuvwxy"
	label62 = "abcdefghijklmnopqrstuvwxyz0123456789abcdefghijklmnopqrstuvwxyz"
)

func TestIsDomain(t *testing.T) {
	t.Parallel()

	assert.Len(t, label63, 63)
	assert.Len(t, label61, 61)

	cases := []struct {
		name  string
		valid bool
	}{
		{"eu", true},
		{"example.com", true},
		{"EXAMPLE.Com", true},
		{"1.2.3.4", true},
		{"xn--bcher-kva.example", true},
		{"a-b.c-d-e.f", true},
		{"a--b.example", true},
		{label63, true},
		{label63 + "." + label63 + "." + label63 + "." + label61, true},
		{"this-is-a-long-label.with-several-hyphens.and-digits-0123.example-domain.test", true},
		{label63 + "x", false},
		{label63 + "." + label63 + "." + label63 + "." + label62, false},
		{"", false},
		{".", false},
		{"example.com.", false},
		{".example.com", false},
		{"example..com", false},
		{"-example.com", false},
		{"example-.com", false},
		{"exa_mple.com", false},
		{"_dmarc.example.com", false},
		{" example.com", false},
		{"example.com ", false},
		{"bücher.example", false},
	}
	for i, c := range cases {
		assert.Equal(t, c.valid, IsDomain(c.name), "IsDomain(%q) #%d", c.name, i)
	}
	assert.Nil(t, New(strings.Repeat("a", MaxLength+1)))
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		exp   string
		valid bool
	}{
		{"example.com.", "example.com", true},
		{"example.com", "example.com", true},
		{label63 + "." + label63 + "." + label63 + "." + label61 + ".", label63 + "." + label63 + "." + label63 + "." + label61, true},
		{"example.com..", "", false},
		{".", "", false},
		{"", "", false},
	}
	for i, c := range cases {
		name, ok := Canonical(c.name)
		assert.Equal(t, c.valid, ok, "Canonical(%q) #%d", c.name, i)
		assert.Equal(t, c.exp, name, "Canonical(%q) #%d", c.name, i)
	}
}
