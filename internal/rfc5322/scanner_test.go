package rfc5322

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/moriyoshi/rfc822check/internal/bufio"
	"github.com/stretchr/testify/assert"
)

type result struct {
	headers    [][]string
	names      []string
	body       string
	stragglers []string
}

type testHandler struct {
	result
}

func (h *testHandler) HandleStraggler(b []byte) error {
	h.result.stragglers = append(h.result.stragglers, string(b))
	return nil
}

func (h *testHandler) HandleHeaderField(f *HeaderField) error {
	lines := make([]string, len(f.Lines))
	for i, l := range f.Lines {
		lines[i] = string(l)
	}
	h.result.headers = append(h.result.headers, lines)
	h.result.names = append(h.result.names, f.Name())
	return nil
}

func (h *testHandler) HandleBody(b bufio.BufferedReader) error {
	bb, err := io.ReadAll(b)
	if err != nil {
		return err
	}
	h.result.body = string(bb)
	return nil
}

func TestScan(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		expected result
		input    []byte
	}{
		{
			name: "simple",
			expected: result{
				headers: [][]string{
					{"Subject: foo", "\tbar", "\tbaz"},
					{"From: abc", "\t<def@example.com>"},
					{"To: \"ghi\"", "  <\"jkl\"@example.com>"},
				},
				names:      []string{"Subject", "From", "To"},
				body:       "body\nbody",
				stragglers: nil,
			},
			input: []byte(strings.Trim(`
Subject: foo
	bar
	baz
From: abc
	<def@example.com>
To: "ghi"
  <"jkl"@example.com>

body
body`, "\n")),
		},
		{
			name: "straggler",
			expected: result{
				headers: [][]string{
					{"Subject: foo", "\tbar", "\tbaz"},
					{"From: abc", "\t<def@example.com>"},
					{"To: \"ghi\"", "  <\"jkl\"@example.com>"},
				},
				names:      []string{"Subject", "From", "To"},
				body:       "body\nbody",
				stragglers: []string{"\t\tStraggler"},
			},
			input: []byte(strings.Trim(`
		Straggler
Subject: foo
	bar
	baz
From: abc
	<def@example.com>
To: "ghi"
  <"jkl"@example.com>

body
body`, "\n")),
		},
		{
			name: "header only",
			expected: result{
				headers: [][]string{
					{"Subject: foo"},
					{"To: a@example.com,", " b@example.com"},
				},
				names: []string{"Subject", "To"},
			},
			input: []byte("Subject: foo\r\nTo: a@example.com,\r\n b@example.com"),
		},
	}

	for i, c := range cases {
		t.Run(fmt.Sprintf("#%d: %s", i, c.name), func(t *testing.T) {
			t.Parallel()
			h := &testHandler{}
			err := Scan(&bufio.BytesReaderWrapper{Reader: bytes.NewReader(c.input)}, h)
			if assert.NoError(t, err) {
				assert.Equal(t, c.expected, h.result)
			}
			h = &testHandler{}
			err = Scan(bufio.NewBufferedReader(strings.NewReader(string(c.input))), h)
			if assert.NoError(t, err) {
				assert.Equal(t, c.expected, h.result)
			}
		})
	}
}
