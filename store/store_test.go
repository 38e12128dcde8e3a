package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMillisSinceMatchesUnixMilli(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.Equal(t, ts.UnixMilli(), MillisSince(ts))
}
