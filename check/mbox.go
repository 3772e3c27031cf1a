package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/emersion/go-mbox"
)

type MessageReport struct {
	Index   int            `yaml:"index" json:"index"`
	Headers []HeaderReport `yaml:"headers,omitempty" json:"headers,omitempty"`
	Error   string         `yaml:"error,omitempty" json:"error,omitempty"`
}

// Valid reports whether the message could be read and all of its
// checked headers are valid.
func (mr *MessageReport) Valid() bool {
	if mr.Error != "" {
		return false
	}
	for i := range mr.Headers {
		if !mr.Headers[i].Valid() {
			return false
		}
	}
	return true
}

// CheckMailbox runs CheckMessage on every message of the mbox file read
// from r. A message that cannot be read is reported with its error and
// the rest of the file is still checked; only a failure to find the
// next message aborts the run.
func (c *Checker) CheckMailbox(ctx context.Context, r io.Reader) ([]MessageReport, error) {
	var reports []MessageReport
	reader := mbox.NewReader(r)
	for idx := 0; ; idx++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		msgReader, err := reader.NextMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("message %d: %w", idx, err)
		}

		mr := MessageReport{Index: idx}
		headers, err := c.CheckMessage(msgReader)
		if err != nil {
			c.logger.Warn("failed to check message", slog.Int("index", idx), slog.Any("error", err))
			mr.Error = err.Error()
		} else {
			mr.Headers = headers
		}
		reports = append(reports, mr)
	}
	c.logger.Info("mailbox checked", slog.Int("messages", len(reports)))
	return reports, nil
}
