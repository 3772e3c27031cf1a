package check

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMailbox = `From alice@example.com Thu Jan  1 00:00:00 1970
From: Alice <alice@example.com>
To: bob@example.com

Hello

From bob@example.com Thu Jan  1 00:00:00 1970
From: b@[example.com]
Subject: x

Hi
`

func TestCheckMailbox(t *testing.T) {
	t.Parallel()

	reports, err := defaultChecker.CheckMailbox(context.Background(), strings.NewReader(testMailbox))
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, 0, reports[0].Index)
	require.Len(t, reports[0].Headers, 2)
	assert.Equal(t, "From", reports[0].Headers[0].Name)
	assert.Equal(t, "To", reports[0].Headers[1].Name)
	assert.True(t, reports[0].Valid())

	assert.Equal(t, 1, reports[1].Index)
	require.Len(t, reports[1].Headers, 1)
	assert.Equal(t, StatusInvalid, reports[1].Headers[0].Status)
	assert.False(t, reports[1].Valid())
}

func TestCheckMailboxErrors(t *testing.T) {
	t.Parallel()

	reports, err := defaultChecker.CheckMailbox(context.Background(), strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, reports)

	_, err = defaultChecker.CheckMailbox(context.Background(), strings.NewReader("To: a@example.com\n\nnot a mailbox\n"))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = defaultChecker.CheckMailbox(ctx, strings.NewReader(testMailbox))
	assert.ErrorIs(t, err, context.Canceled)

	mr := MessageReport{Error: "broken"}
	assert.False(t, mr.Valid())
}
