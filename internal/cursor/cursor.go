// Package cursor implements a codepoint cursor over an immutable string,
// the building block of the hand-written recursive descent parsers in
// this module.
//
// A grammar embeds *Cursor and writes one method per production. A
// production that may fail opens a transaction with Begin, defers its
// Rollback and commits once it has matched:
//
//	func (p *parser) pFoo() bool {
//		txn := p.Begin()
//		defer txn.Rollback()
//		if p.Cur() != 'x' {
//			return false
//		}
//		p.Accept()
//		txn.Commit()
//		return true
//	}
package cursor

import (
	"fmt"
	"unicode/utf8"
)

// EOF is returned in place of a codepoint past the end of the input.
const EOF rune = -1

type Cursor struct {
	source string
	ofs    int
	cur    rune
	next   rune
	width  int
}

// New returns a cursor positioned at the start of input, or nil if the
// input is longer than maxlen bytes.
func New(input string, maxlen int) *Cursor {
	if len(input) > maxlen {
		return nil
	}
	c := &Cursor{source: input}
	c.Jump(0)
	return c
}

func (c *Cursor) decode(pos int) (rune, int) {
	if pos >= len(c.source) {
		return EOF, 0
	}
	return utf8.DecodeRuneInString(c.source[pos:])
}

// Source returns the whole input.
func (c *Cursor) Source() string {
	return c.source
}

// Len returns the length of the input in bytes.
func (c *Cursor) Len() int {
	return len(c.source)
}

// Pos returns the byte offset of the current codepoint.
func (c *Cursor) Pos() int {
	return c.ofs
}

// Cur returns the current codepoint or EOF.
func (c *Cursor) Cur() rune {
	return c.cur
}

// Peek returns the codepoint following the current one or EOF.
func (c *Cursor) Peek() rune {
	return c.next
}

// Jump moves the cursor to the byte offset pos and returns the codepoint
// found there. It panics if pos lies outside of [0, Len()].
func (c *Cursor) Jump(pos int) rune {
	if pos < 0 || pos > len(c.source) {
		panic(fmt.Sprintf("jump to %d outside of [0, %d]", pos, len(c.source)))
	}
	c.ofs = pos
	c.cur, c.width = c.decode(pos)
	c.next, _ = c.decode(pos + c.width)
	return c.cur
}

// Bra moves the cursor by delta bytes, see Jump.
func (c *Cursor) Bra(delta int) rune {
	return c.Jump(c.ofs + delta)
}

// Accept advances past the current codepoint and returns the new current
// one. Accepting the end of input is a programming error.
func (c *Cursor) Accept() rune {
	if c.cur == EOF {
		panic("cannot accept end of input")
	}
	return c.Jump(c.ofs + c.width)
}

// Skip advances while f holds for the current codepoint and returns the
// codepoint it stopped at.
func (c *Cursor) Skip(f func(cur rune) bool) rune {
	for c.cur != EOF && f(c.cur) {
		c.Accept()
	}
	return c.cur
}

// SkipPeek is like Skip but also hands the following codepoint to f.
func (c *Cursor) SkipPeek(f func(cur, next rune) bool) rune {
	for c.cur != EOF && f(c.cur, c.next) {
		c.Accept()
	}
	return c.cur
}

// Substring returns the span [begin, end) of the input. Inverted or out
// of range spans panic.
func (c *Cursor) Substring(begin, end int) Substring {
	if begin < 0 || begin > end || end > len(c.source) {
		panic(fmt.Sprintf("invalid substring [%d, %d) of %d bytes", begin, end, len(c.source)))
	}
	return Substring{Begin: begin, End: end, source: c.source}
}

// Begin opens a transaction whose savepoint is the current position.
func (c *Cursor) Begin() *Txn {
	return &Txn{c: c, pos: c.ofs}
}
