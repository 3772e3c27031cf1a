package rfc5322

import (
	"io"

	"github.com/moriyoshi/rfc822check/internal/bufio"
)

// ScannerHandler receives the parts of a message in order. Stragglers
// are continuation lines that appear before the first header field.
type ScannerHandler interface {
	HandleStraggler([]byte) error
	HandleHeaderField(*HeaderField) error
	HandleBody(bufio.BufferedReader) error
}

func readLineSlice(r bufio.BufferedReader) ([]byte, bool, error) {
	l, borrowable, err := r.ReadUpTo('\n')
	if err == bufio.ErrBufferFull {
		err = nil
		if l[len(l)-1] == '\r' {
			l = l[:len(l)-1]
			err = r.UnreadByte()
		}
	}
	if len(l) == 0 {
		return nil, true, err
	}
	if l[len(l)-1] == '\n' {
		if len(l) >= 2 && l[len(l)-2] == '\r' {
			l = l[:len(l)-2]
		} else {
			l = l[:len(l)-1]
		}
	}
	return l, borrowable, err
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t'
}

// Scan splits the message read from r into header fields and the body.
// Lines may end in CRLF or a bare LF.
func Scan(r bufio.BufferedReader, handler ScannerHandler) error {
	var lines [][]byte
	var eof bool
	for !eof {
		l, borrowable, err := readLineSlice(r)
		if err != nil {
			if err == io.EOF {
				eof = true
			} else {
				return err
			}
		}
		if !borrowable {
			l = append([]byte(nil), l...)
		}
		if len(l) > 0 && isWhitespace(l[0]) {
			if len(lines) == 0 {
				if err := handler.HandleStraggler(l); err != nil {
					return err
				}
				continue
			}
		} else {
			if len(lines) > 0 {
				if err := handler.HandleHeaderField(&HeaderField{Lines: lines}); err != nil {
					return err
				}
				lines = nil
			}
			if len(l) == 0 {
				break
			}
		}
		lines = append(lines, l)
	}
	// a message that ends within its header
	if len(lines) > 0 {
		if err := handler.HandleHeaderField(&HeaderField{Lines: lines}); err != nil {
			return err
		}
	}

	return handler.HandleBody(r)
}

type functionBackedScannerHandler struct {
	StragglerHandler   func([]byte) error
	HeaderFieldHandler func(*HeaderField) error
	BodyHandler        func(bufio.BufferedReader) error
}

func (h *functionBackedScannerHandler) HandleStraggler(l []byte) error {
	if h.StragglerHandler == nil {
		return nil
	}
	return h.StragglerHandler(l)
}

func (h *functionBackedScannerHandler) HandleHeaderField(f *HeaderField) error {
	if h.HeaderFieldHandler == nil {
		return nil
	}
	return h.HeaderFieldHandler(f)
}

func (h *functionBackedScannerHandler) HandleBody(r bufio.BufferedReader) error {
	if h.BodyHandler == nil {
		return nil
	}
	return h.BodyHandler(r)
}

func ScannerHandlerFromFunctions(
	stragglerHandler func([]byte) error,
	headerFieldHandler func(*HeaderField) error,
	bodyHandler func(bufio.BufferedReader) error,
) ScannerHandler {
	return &functionBackedScannerHandler{
		StragglerHandler:   stragglerHandler,
		HeaderFieldHandler: headerFieldHandler,
		BodyHandler:        bodyHandler,
	}
}
