// Package logging configures zerolog for the CLIs and hands out per-module
// sub-loggers that follow later reconfiguration.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// sink is the shared destination of every module logger. Loggers copy
// their writer when created, so they hold the sink and Setup swaps what
// the sink forwards to.
type sink struct {
	mu sync.RWMutex
	w  io.Writer
}

func (s *sink) Write(p []byte) (int, error) {
	s.mu.RLock()
	w := s.w
	s.mu.RUnlock()
	return w.Write(p)
}

func (s *sink) set(w io.Writer) {
	s.mu.Lock()
	s.w = w
	s.mu.Unlock()
}

var out = &sink{w: os.Stderr}

// DefaultLevel applies until Setup runs, so library and test use stays
// quiet about per-event debug lines.
const DefaultLevel = zerolog.InfoLevel

func init() {
	zerolog.SetGlobalLevel(DefaultLevel)
}

// Module returns a logger carrying module=name.
func Module(name string) zerolog.Logger {
	return zerolog.New(out).With().Timestamp().Str("module", name).Logger()
}

// Setup routes all logging to a console writer on w (stderr when nil) at
// the given level.
func Setup(w io.Writer, level zerolog.Level) {
	if w == nil {
		w = os.Stderr
	}
	out.set(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}
