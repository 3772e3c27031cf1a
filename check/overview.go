package check

// Overview holds the verdict of every grammar on one input.
type Overview struct {
	Input   string
	Results [IPv6 + 1]Result
}

func (c *Checker) Overview(input string) *Overview {
	o := &Overview{Input: input}
	for g := range o.Results {
		o.Results[g] = c.Check(input, Grammar(g))
	}
	return o
}

func (o *Overview) Result(g Grammar) *Result {
	return &o.Results[g]
}

// IsList reports whether the input parses as a list. A single mailbox
// also parses as a list of one.
func (o *Overview) IsList() bool {
	return o.Results[MailboxList].Status != StatusUnparseable ||
		o.Results[AddressList].Status != StatusUnparseable
}

// EMail returns the canonical address, preferring the address
// productions that allow groups, if it is valid.
func (o *Overview) EMail() (string, bool) {
	var r *Result
	if o.IsList() {
		r = o.pick(AddressList, MailboxList)
	} else {
		r = o.pick(Address, Mailbox)
	}
	if r == nil || !r.Valid() {
		return "", false
	}
	return r.Canonical, true
}

func (o *Overview) pick(preferred, fallback Grammar) *Result {
	if r := o.Result(preferred); r.Status != StatusUnparseable {
		return r
	}
	if r := o.Result(fallback); r.Status != StatusUnparseable {
		return r
	}
	return nil
}

// IP returns the IPv6 address, or failing that the IPv4 address.
func (o *Overview) IP() (string, bool) {
	if r := o.Result(IPv6); r.Valid() {
		return r.Canonical, true
	}
	if r := o.Result(IPv4); r.Valid() {
		return r.Canonical, true
	}
	return "", false
}

func (o *Overview) FQDN() (string, bool) {
	if r := o.Result(Domain); r.Valid() {
		return r.Canonical, true
	}
	return "", false
}
