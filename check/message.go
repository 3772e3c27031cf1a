package check

import (
	"io"
	"log/slog"
	"strings"

	"github.com/moriyoshi/rfc822check"
	"github.com/moriyoshi/rfc822check/internal/bufio"
	"github.com/moriyoshi/rfc822check/internal/rfc5322"
	"github.com/moriyoshi/rfc822check/internal/rfc5322/address"
)

type HeaderReport struct {
	Name string `yaml:"name" json:"name"`
	// Value is the field body, unfolded if possible.
	Value     string  `yaml:"value" json:"value"`
	Grammar   Grammar `yaml:"grammar" json:"grammar"`
	Status    Status  `yaml:"status" json:"status"`
	Canonical string  `yaml:"canonical,omitempty" json:"canonical,omitempty"`
	Invalids  string  `yaml:"invalids,omitempty" json:"invalids,omitempty"`
	Error     string  `yaml:"error,omitempty" json:"error,omitempty"`
}

func (hr *HeaderReport) Valid() bool {
	return hr.Status == StatusValid
}

func (c *Checker) checkField(f *rfc5322.HeaderField) (Result, bool) {
	g, ok := c.Rules.Lookup(f.Name())
	if !ok {
		return Result{}, false
	}
	return c.Check(f.Value(), g), true
}

func newHeaderReport(name string, r Result) HeaderReport {
	value := r.Input
	if v, ok := address.Unfold(value); ok {
		value = v
	}
	hr := HeaderReport{
		Name:      name,
		Value:     strings.TrimLeft(value, " \t"),
		Grammar:   r.Grammar,
		Status:    r.Status,
		Canonical: r.Canonical,
		Invalids:  r.Invalids,
	}
	if r.Err != nil {
		hr.Error = r.Err.Error()
	}
	return hr
}

// CheckMessage reads the header of the message from r and reports on
// every field the rules name, in message order. The body is not read.
func (c *Checker) CheckMessage(r io.Reader) ([]HeaderReport, error) {
	var reports []HeaderReport
	err := rfc5322.Scan(
		bufio.NewBufferedReader(r),
		rfc5322.ScannerHandlerFromFunctions(
			nil,
			func(f *rfc5322.HeaderField) error {
				result, ok := c.checkField(f)
				if !ok {
					return nil
				}
				name := f.Name()
				c.logger.Debug("checked header", slog.String("name", name), slog.String("status", result.Status.String()))
				reports = append(reports, newHeaderReport(name, result))
				return nil
			},
			nil,
		),
	)
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *Checker) render(name string, v rfc822check.Result) string {
	offset := len(name) + 2
	b := make([]byte, offset, offset+len(v.String()))
	switch v := v.(type) {
	case *rfc822check.AddrSpec:
		b = c.renderer.AppendAddrSpec(b, v)
	case *rfc822check.Address:
		b = c.renderer.Append(b, v)
	case *rfc822check.AddressList:
		b = c.renderer.AppendList(b, v)
	}
	return string(b[offset:])
}

// Normalize copies the message from r to w, replacing the body of every
// valid address field the rules name with its canonical form folded at
// 78 columns. Nothing is written unless the whole message could be read.
func (c *Checker) Normalize(w io.Writer, r io.Reader) error {
	var s rfc5322.Store
	err := rfc5322.Scan(
		bufio.NewBufferedReader(r),
		rfc5322.ScannerHandlerFromFunctions(
			s.HandleStraggler,
			func(f *rfc5322.HeaderField) error {
				result, ok := c.checkField(f)
				if !ok || !result.Valid() {
					if ok {
						c.logger.Info("leaving header as is", slog.String("name", f.Name()), slog.String("status", result.Status.String()))
					}
					return s.HandleHeaderField(f)
				}
				name := f.Name()
				return s.HandleHeaderField(rfc5322.NewHeaderField(name, c.render(name, result.Value)))
			},
			s.HandleBody,
		),
	)
	if err != nil {
		return err
	}
	return s.Replay(&rfc5322.Builder{Writer: w})
}
