package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWarmer_RejectsBadSchedule(t *testing.T) {
	_, err := NewWarmer("not a schedule", func(context.Context) error { return nil })
	require.Error(t, err)
}

func TestWarmer_RunCallsRefresh(t *testing.T) {
	calls := 0
	w, err := NewWarmer("*/10 * * * *", func(ctx context.Context) error {
		calls++
		_, ok := ctx.Deadline()
		require.True(t, ok, "refresh should run under a deadline")
		return nil
	})
	require.NoError(t, err)

	w.Run()
	require.Equal(t, 1, calls)
}

func TestWarmer_RunSwallowsErrors(t *testing.T) {
	w, err := NewWarmer("@hourly", func(context.Context) error { return errors.New("vendor down") })
	require.NoError(t, err)

	require.NotPanics(t, w.Run)
}

func TestWarmer_StartStop(t *testing.T) {
	w, err := NewWarmer("@every 1h", func(context.Context) error { return nil })
	require.NoError(t, err)

	w.Start()
	w.Stop()
}
