package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetup_ReachesEarlierModuleLoggers(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		out.set(os.Stderr)
		zerolog.SetGlobalLevel(prevLevel)
	})

	modLog := Module("engine")

	var buf bytes.Buffer
	Setup(&buf, zerolog.WarnLevel)
	modLog.Info().Msg("hidden")
	modLog.Warn().Str("k", "v").Msg("shown")
	log.Error().Msg("global")

	got := buf.String()
	assert.NotContains(t, got, "hidden")
	assert.Contains(t, got, "shown")
	assert.Contains(t, got, "module=")
	assert.Contains(t, got, "engine")
	assert.Contains(t, got, "global")
}

func TestDefaultLevel_HidesDebug(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		out.set(os.Stderr)
		zerolog.SetGlobalLevel(prevLevel)
	})
	assert.Equal(t, DefaultLevel, zerolog.GlobalLevel())

	var buf bytes.Buffer
	out.set(&buf)
	modLog := Module("transform")
	modLog.Debug().Msg("pan start")
	modLog.Info().Msg("progress")

	got := buf.String()
	assert.NotContains(t, got, "pan start")
	assert.Contains(t, got, `"module":"transform"`)
	assert.Contains(t, got, "progress")
}
