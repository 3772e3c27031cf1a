package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/moriyoshi/rfc822check/check"
	"github.com/moriyoshi/rfc822check/internal/textutil"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[1;33m"
)

// palette holds the marks of the show command: valid, parses but is
// invalid, and does not parse.
type palette struct {
	valid, parses, bad string
	bold, reset        string
}

func newPalette(colour bool) *palette {
	if !colour {
		return &palette{valid: "✔", parses: "~", bad: "✘"}
	}
	return &palette{
		valid:  ansiGreen + "✔" + ansiReset,
		parses: ansiYellow + "✘" + ansiReset,
		bad:    ansiRed + "✘" + ansiReset,
		bold:   ansiBold,
		reset:  ansiReset,
	}
}

func (p *palette) mark(r *check.Result) string {
	switch r.Status {
	case check.StatusValid:
		return p.valid
	case check.StatusInvalid:
		return p.parses
	}
	return p.bad
}

func writeOverview(w io.Writer, p *palette, o *check.Overview) error {
	var b strings.Builder
	fmt.Fprintf(&b, "‣ %s%s\n\t", textutil.EscapeNonPrintASCII(o.Input), p.reset)
	fmt.Fprintf(&b, "addr-spec %s  ", p.mark(o.Result(check.AddrSpec)))
	if o.IsList() {
		fmt.Fprintf(&b, "mailbox-list %s  address-list %s", p.mark(o.Result(check.MailboxList)), p.mark(o.Result(check.AddressList)))
	} else {
		fmt.Fprintf(&b, "(no list) mailbox %s  address %s", p.mark(o.Result(check.Mailbox)), p.mark(o.Result(check.Address)))
	}
	fmt.Fprintf(&b, "  FQDN %s  IPv6 %s  IPv4 %s\n",
		p.mark(o.Result(check.Domain)), p.mark(o.Result(check.IPv6)), p.mark(o.Result(check.IPv4)))
	if s, ok := o.EMail(); ok {
		fmt.Fprintf(&b, "\teMail: %s%s%s\n", p.bold, textutil.EscapeNonPrintASCII(s), p.reset)
	}
	if s, ok := o.IP(); ok {
		fmt.Fprintf(&b, "\tIP: %s%s%s\n", p.bold, s, p.reset)
	}
	if s, ok := o.FQDN(); ok {
		fmt.Fprintf(&b, "\tFQDN: %s%s%s\n", p.bold, s, p.reset)
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func writeHeaderReportText(b *strings.Builder, indent string, hr *check.HeaderReport) {
	fmt.Fprintf(b, "%s%s: %s (%s)\n", indent, hr.Name, hr.Status, hr.Grammar)
	switch {
	case hr.Error != "":
		fmt.Fprintf(b, "%s\t%s\n", indent, textutil.EscapeNonPrintASCII(hr.Error))
	default:
		fmt.Fprintf(b, "%s\t%s\n", indent, textutil.EscapeNonPrintASCII(hr.Canonical))
		if hr.Invalids != "" {
			fmt.Fprintf(b, "%s\tinvalid: %s\n", indent, textutil.EscapeNonPrintASCII(hr.Invalids))
		}
	}
}

func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown format %q", format)
}

func writeHeaderReports(w io.Writer, format string, reports []check.HeaderReport) error {
	if format != "text" {
		if reports == nil {
			reports = []check.HeaderReport{}
		}
		return encode(w, format, reports)
	}
	var b strings.Builder
	for i := range reports {
		writeHeaderReportText(&b, "", &reports[i])
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeMessageReports(w io.Writer, format string, reports []check.MessageReport) error {
	if format != "text" {
		if reports == nil {
			reports = []check.MessageReport{}
		}
		return encode(w, format, reports)
	}
	var b strings.Builder
	for i := range reports {
		mr := &reports[i]
		fmt.Fprintf(&b, "message %d:\n", mr.Index)
		if mr.Error != "" {
			fmt.Fprintf(&b, "\terror: %s\n", textutil.EscapeNonPrintASCII(mr.Error))
			continue
		}
		for j := range mr.Headers {
			writeHeaderReportText(&b, "\t", &mr.Headers[j])
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
