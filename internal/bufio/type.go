// Package bufio provides the reader abstraction the message scanner works
// on, backed either by an in-memory message or by a buffered stream.
package bufio

import (
	_bufio "bufio"
	"bytes"
	"io"
)

var ErrBufferFull = _bufio.ErrBufferFull

type Scanner interface {
	// ReadUpTo reads until delim and reports whether the returned slice
	// may be retained by the caller.
	ReadUpTo(delim byte) ([]byte, bool, error)
}

type BufferedReader interface {
	io.Reader
	io.ByteScanner
	Scanner
}

// NewBufferedReader wraps r, reading in-memory messages without copying
// and anything else through a bufio.Reader.
func NewBufferedReader(r io.Reader) BufferedReader {
	switch r := r.(type) {
	case BufferedReader:
		return r
	case *bytes.Reader:
		return &BytesReaderWrapper{Reader: r}
	case *bytes.Buffer:
		return &BytesReaderWrapper{Reader: bytes.NewReader(r.Bytes())}
	}
	return &BufferWrapper{Reader: _bufio.NewReader(r)}
}
