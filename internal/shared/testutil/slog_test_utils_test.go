package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhlvis/pkg/contracts/domain"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("page fetched", slog.Int("page", 1))
		logger.Error("fetch failed", slog.Int("status", 500))

		require.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("page fetched"))
		assert.True(t, handler.ContainsAttr("status", int64(500)))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug")
		logger.Warn("warn one")
		logger.Warn("warn two")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelWarn), 2)
		AssertLogContains(t, handler, slog.LevelWarn, "warn two")
	})

	t.Run("keeps attrs from With", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("component", "fetcher")).Info("started")

		AssertLogAttr(t, handler, "component", "fetcher")
		AssertNoErrors(t, handler)
	})
}

func TestSkater(t *testing.T) {
	r := Skater("x", "UTA", domain.PositionCenter, 2024, 10, 2, 3, 0)

	assert.Equal(t, 5.0, r.Points.Value)
	assert.False(t, r.ShootingPct.Valid)
	assert.InDelta(t, 0.5, r.PointsPerGame.Value, 1e-9)
	assert.Equal(t, 5, SampleTable().Len())
}
