package bufio

import (
	_bufio "bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBufferedReader(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &BytesReaderWrapper{}, NewBufferedReader(bytes.NewReader(nil)))
	assert.IsType(t, &BytesReaderWrapper{}, NewBufferedReader(bytes.NewBufferString("x")))
	assert.IsType(t, &BufferWrapper{}, NewBufferedReader(strings.NewReader("x")))
	w := &BufferWrapper{Reader: _bufio.NewReader(strings.NewReader("x"))}
	assert.Same(t, w, NewBufferedReader(w))
}

func TestReadUpTo(t *testing.T) {
	t.Parallel()

	for _, r := range []BufferedReader{
		NewBufferedReader(bytes.NewReader([]byte("ab\ncd"))),
		NewBufferedReader(strings.NewReader("ab\ncd")),
	} {
		l, _, err := r.ReadUpTo('\n')
		assert.NoError(t, err)
		assert.Equal(t, "ab\n", string(l))
		l, _, err = r.ReadUpTo('\n')
		assert.Equal(t, io.EOF, err)
		assert.Equal(t, "cd", string(l))
	}
}
