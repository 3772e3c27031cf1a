// Package check applies the address, domain and IP literal parsers to
// batches of inputs and to the address header fields of messages.
package check

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/net/idna"
	"golang.org/x/sync/errgroup"
	yaml "gopkg.in/yaml.v3"

	"github.com/moriyoshi/rfc822check"
	"github.com/moriyoshi/rfc822check/internal/logging"
	"github.com/moriyoshi/rfc822check/internal/rfc5322/address"
)

// Status separates inputs that do not parse from those that parse but
// fail a validity rule, such as a domain-literal holding no address.
type Status int

const (
	StatusUnparseable Status = iota
	StatusInvalid
	StatusValid
)

func (s Status) String() string {
	switch s {
	case StatusUnparseable:
		return "unparseable"
	case StatusInvalid:
		return "invalid"
	case StatusValid:
		return "valid"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	for _, v := range []Status{StatusUnparseable, StatusInvalid, StatusValid} {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", b)
}

type Result struct {
	Input   string  `yaml:"input" json:"input"`
	Grammar Grammar `yaml:"grammar" json:"grammar"`
	Status  Status  `yaml:"status" json:"status"`
	// Canonical is the input with folding, surrounding whitespace and
	// comments outside display names removed. Domains lose a trailing
	// dot; IP addresses are in their RFC 5952 form.
	Canonical string `yaml:"canonical,omitempty" json:"canonical,omitempty"`
	// Invalids lists the members of a list that are not valid.
	Invalids string `yaml:"invalids,omitempty" json:"invalids,omitempty"`
	// Value holds the parse result of the address grammars.
	Value rfc822check.Result `yaml:"-" json:"-"`
	Err   error              `yaml:"-" json:"-"`
}

func (r *Result) Valid() bool {
	return r.Status == StatusValid
}

func settle[T rfc822check.Result](r *Result, v T, err error) {
	if err != nil {
		r.Status = StatusUnparseable
		r.Err = err
		return
	}
	r.Value = v
	r.Canonical = v.String()
	if v.Valid() {
		r.Status = StatusValid
	} else {
		r.Status = StatusInvalid
	}
}

type Checker struct {
	Rules       HeaderRules
	lenient     bool
	idna        bool
	concurrency int
	logger      *slog.Logger
	renderer    *address.AddressRenderer
}

type OptionFunc func(*Checker) (*Checker, error)

func WithLogger(logger *slog.Logger) OptionFunc {
	return func(c *Checker) (*Checker, error) {
		if logger == nil {
			logger = logging.Discard()
		}
		c.logger = logger
		return c, nil
	}
}

// WithLenient accepts a trailing dot after domain names.
func WithLenient(enabled bool) OptionFunc {
	return func(c *Checker) (*Checker, error) {
		c.lenient = enabled
		return c, nil
	}
}

// WithIDNA converts internationalized domain names to their ASCII form
// before validating them in the domain grammar.
func WithIDNA(enabled bool) OptionFunc {
	return func(c *Checker) (*Checker, error) {
		c.idna = enabled
		return c, nil
	}
}

// WithConcurrency bounds the number of inputs CheckAll works on at once.
func WithConcurrency(n int) OptionFunc {
	return func(c *Checker) (*Checker, error) {
		if n < 1 {
			return nil, fmt.Errorf("concurrency must be positive, got %d", n)
		}
		c.concurrency = n
		return c, nil
	}
}

// The line length RFC 5322 section 2.1.1 recommends.
const foldingWidth = 78

var folding = []byte{'\r', '\n', ' '}

func newChecker(hrs HeaderRules) *Checker {
	if hrs == nil {
		hrs = DefaultHeaderRules()
	}
	return &Checker{
		Rules:       hrs,
		concurrency: runtime.GOMAXPROCS(0),
		logger:      logging.Discard(),
		renderer: &address.AddressRenderer{
			Wrap:               folding,
			WrapLen:            foldingWidth,
			RequoteDisplayName: true,
		},
	}
}

var defaultChecker = newChecker(nil)

// NewChecker returns a checker for hrs, or for DefaultHeaderRules if hrs
// is nil.
func NewChecker(hrs HeaderRules, options ...OptionFunc) (*Checker, error) {
	c := newChecker(hrs)
	for _, option := range options {
		var err error
		c, err = option(c)
		if err != nil {
			return nil, err
		}
	}
	c.logger.Info("checker created", slog.Int("rules", len(c.Rules)), slog.Bool("lenient", c.lenient), slog.Bool("idna", c.idna))
	for i, rule := range c.Rules {
		c.logger.Debug("rule", slog.Int("precedence", i), slog.String("header", rule.Header), slog.String("grammar", rule.Grammar.String()))
	}
	return c, nil
}

func NewCheckerFromYAML(b []byte, options ...OptionFunc) (*Checker, error) {
	var hrs HeaderRules
	err := yaml.Unmarshal(b, &hrs)
	if err != nil {
		return nil, err
	}
	if hrs == nil {
		hrs = HeaderRules{}
	}
	return NewChecker(hrs, options...)
}

func NewCheckerFromYAMLFile(path string, options ...OptionFunc) (*Checker, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := NewCheckerFromYAML(b, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load header rules from %s: %w", path, err)
	}
	return c, nil
}

// Check checks a single input against g with the default settings.
func Check(input string, g Grammar) Result {
	return defaultChecker.Check(input, g)
}

func (c *Checker) Check(input string, g Grammar) Result {
	r := Result{Input: input, Grammar: g}
	var opts []rfc822check.OptionFunc
	if c.lenient {
		opts = append(opts, rfc822check.WithTrailingDot(true))
	}
	switch g {
	case AddrSpec:
		v, err := rfc822check.ParseAddrSpec(input, opts...)
		settle(&r, v, err)
	case Mailbox, Address:
		v, err := rfc822check.ParseMailboxOrAddress(input, g == Address, opts...)
		settle(&r, v, err)
	case MailboxList, AddressList:
		var v *rfc822check.AddressList
		var err error
		if g == MailboxList {
			v, err = rfc822check.ParseMailboxList(input, opts...)
		} else {
			v, err = rfc822check.ParseAddressList(input, opts...)
		}
		settle(&r, v, err)
		if err == nil {
			r.Invalids, _ = v.InvalidsString()
		}
	case Domain:
		c.checkDomain(&r)
	case IPv4:
		a, err := rfc822check.ParseIPv4(input)
		r.settleIP(a.String(), err)
	case IPv6:
		a, err := rfc822check.ParseIPv6(input)
		r.settleIP(a.String(), err)
	default:
		r.Err = fmt.Errorf("unknown grammar %s", g)
	}
	return r
}

func (r *Result) settleIP(canonical string, err error) {
	if err != nil {
		r.Err = err
		return
	}
	r.Status = StatusValid
	r.Canonical = canonical
}

func (c *Checker) checkDomain(r *Result) {
	name := r.Input
	if c.idna {
		a, err := idna.Lookup.ToASCII(name)
		if err != nil {
			r.Err = fmt.Errorf("%q is not a domain: %w: %w", r.Input, rfc822check.ErrSyntax, err)
			return
		}
		name = a
	}
	var ok bool
	if c.lenient {
		name, ok = rfc822check.CanonicalFQDN(name)
	} else {
		ok = rfc822check.IsValidFQDN(name)
	}
	if !ok {
		r.Err = fmt.Errorf("%q is not a domain: %w", r.Input, rfc822check.ErrSyntax)
		return
	}
	r.Status = StatusValid
	r.Canonical = name
}

// CheckAll checks every input against g, running up to the configured
// concurrency at once. Results are in input order.
func (c *Checker) CheckAll(ctx context.Context, inputs []string, g Grammar) ([]Result, error) {
	results := make([]Result, len(inputs))
	eg, innerCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.concurrency)
	for i, input := range inputs {
		eg.Go(func() error {
			if err := innerCtx.Err(); err != nil {
				return err
			}
			results[i] = c.Check(input, g)
			return nil
		})
	}
	err := eg.Wait()
	if err != nil {
		return nil, err
	}
	return results, nil
}
