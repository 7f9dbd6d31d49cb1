package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface {
	Name() string
}

type impl struct{}

func (*impl) Name() string { return "impl" }

func TestCheckInit(t *testing.T) {
	t.Run("all set", func(t *testing.T) {
		var p provider = &impl{}
		require.NotPanics(t, func() {
			CheckInit("store", p, "count", 0)
		})
	})
	t.Run("nil interface and typed nil are reported", func(t *testing.T) {
		var empty provider
		var typed *impl
		var p provider = typed
		require.PanicsWithValue(t, "dependencies not initialized: notifier, files", func() {
			CheckInit("store", &impl{}, "notifier", empty, "files", p)
		})
	})
	t.Run("odd arguments", func(t *testing.T) {
		require.Panics(t, func() {
			CheckInit("store")
		})
	})
}
