package rfc5322

import (
	"bytes"
	"io"

	"github.com/moriyoshi/rfc822check/internal/bufio"
)

type ComponentType int

const (
	Header ComponentType = iota
	Straggler
	Body
)

type Component struct {
	Type  ComponentType
	Field *HeaderField
	Data  []byte
}

// Store buffers a whole message so that it can be inspected or edited
// before being replayed into another handler.
type Store []Component

func (s *Store) HandleStraggler(b []byte) error {
	b = append([]byte(nil), b...)
	*s = append(*s, Component{Type: Straggler, Data: b})
	return nil
}

func (s *Store) HandleHeaderField(f *HeaderField) error {
	*s = append(*s, Component{Type: Header, Field: f})
	return nil
}

func (s *Store) HandleBody(r bufio.BufferedReader) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	*s = append(*s, Component{Type: Body, Data: body})
	return nil
}

// Fields returns the header fields in message order.
func (s Store) Fields() []*HeaderField {
	var rv []*HeaderField
	for _, c := range s {
		if c.Type == Header {
			rv = append(rv, c.Field)
		}
	}
	return rv
}

func (s *Store) Replay(h ScannerHandler) error {
	for _, c := range *s {
		switch c.Type {
		case Header:
			if err := h.HandleHeaderField(c.Field); err != nil {
				return err
			}
		case Straggler:
			if err := h.HandleStraggler(c.Data); err != nil {
				return err
			}
		case Body:
			if err := h.HandleBody(&bufio.BytesReaderWrapper{Reader: bytes.NewReader(c.Data)}); err != nil {
				return err
			}
		}
	}
	return nil
}
