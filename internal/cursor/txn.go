package cursor

// Txn remembers a position of a Cursor to return to when a production
// does not match.
type Txn struct {
	c   *Cursor
	pos int
}

// Commit moves the savepoint to the current position.
func (t *Txn) Commit() {
	t.pos = t.c.ofs
}

// Rollback returns the cursor to the savepoint. It is a no-op right
// after Commit, which makes it suitable for defer.
func (t *Txn) Rollback() rune {
	return t.c.Jump(t.pos)
}

// Savepoint returns the byte offset the transaction returns to.
func (t *Txn) Savepoint() int {
	return t.pos
}

// Substring returns the span from the savepoint to the current position.
func (t *Txn) Substring() Substring {
	return t.c.Substring(t.pos, t.c.ofs)
}
