package smtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendEMail(t *testing.T) {
	t.Run("not configured is a no-op", func(t *testing.T) {
		i := impl{}
		require.False(t, i.IsConfigured())
		require.NoError(t, i.SendEMail("a@example.com", "subj", "text"))
	})
	t.Run("message headers", func(t *testing.T) {
		buf, err := buildMessage("bot@example.com", "a@example.com", "Task approved", "done")
		require.NoError(t, err)
		msg := buf.String()
		require.Contains(t, msg, "From: bot@example.com\r\n")
		require.Contains(t, msg, "To: a@example.com\r\n")
		require.Contains(t, msg, "Subject: PM Finance - Task approved\r\n")
		require.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8\r\n")
		require.True(t, strings.HasSuffix(msg, "\r\n\r\ndone"))
	})
}
