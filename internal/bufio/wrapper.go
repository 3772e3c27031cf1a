package bufio

import (
	_bufio "bufio"
	"bytes"
)

type BytesReaderWrapper struct {
	*bytes.Reader
}

func (w *BytesReaderWrapper) ReadUpTo(delim byte) ([]byte, bool, error) {
	var b []byte
	for {
		c, err := w.ReadByte()
		if err != nil {
			return b, true, err
		}
		b = append(b, c)
		if c == delim {
			break
		}
	}
	return b, true, nil
}

var _ BufferedReader = &BytesReaderWrapper{}

type BufferWrapper struct {
	*_bufio.Reader
}

func (w *BufferWrapper) ReadUpTo(delim byte) ([]byte, bool, error) {
	b, err := w.ReadSlice(delim)
	return b, false, err
}

var _ BufferedReader = &BufferWrapper{}
