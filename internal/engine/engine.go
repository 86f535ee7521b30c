// Package engine provides the speech synthesis mechanisms pisay can
// dispatch to, and the probing logic that decides which one to use.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
)

// Engine is one concrete mechanism capable of turning text into audio.
type Engine interface {
	// Name returns the engine identifier used by --engine.
	Name() string

	// Available reports whether the mechanism can run right now. A nil
	// return means usable; otherwise the error names what is missing.
	Available() error

	// Synthesize converts text to audio. The caller owns the returned
	// Audio and must Close it on every exit path.
	Synthesize(ctx context.Context, text string) (*Audio, error)
}

// Audio is the result of one synthesis. Engines either stream WAV bytes
// (Data) or hand off an intermediate file (Path); exactly one is set.
type Audio struct {
	// Data holds in-memory WAV bytes for streamed handoff.
	Data []byte

	// Path points at an intermediate WAV file for file handoff.
	Path string

	cleanup func() error
}

// NewFileAudio wraps an intermediate WAV file. Close removes the file.
func NewFileAudio(path string) *Audio {
	return &Audio{
		Path:    path,
		cleanup: func() error { return os.Remove(path) },
	}
}

// Reader opens the audio for playback.
func (a *Audio) Reader() (io.ReadCloser, error) {
	if a.Path != "" {
		f, err := os.Open(a.Path)
		if err != nil {
			return nil, fmt.Errorf("unable to open synthesized audio: %w", err)
		}
		return f, nil
	}
	return io.NopCloser(bytes.NewReader(a.Data)), nil
}

// Close releases any intermediate file. Safe to call more than once.
func (a *Audio) Close() error {
	if a.cleanup == nil {
		return nil
	}
	fn := a.cleanup
	a.cleanup = nil
	return fn()
}

// Config carries per-engine tuning resolved from flags and the config file.
type Config struct {
	// Language is the voice/language code forwarded to each engine
	// (espeak -v, pico2wave -l, builtin language).
	Language string

	// Amplitude is the espeak amplitude (0-200, 0 means tool default).
	Amplitude int

	// Speed is the espeak speaking rate in words per minute (0 means
	// tool default).
	Speed int

	// TempDir overrides the directory for intermediate WAV files.
	TempDir string
}

// Registry holds the supported engines in fixed priority order.
type Registry struct {
	engines []Engine
}

// NewRegistry builds the default engine list. Order is deterministic and
// is the fallback order when no explicit preference is given: espeak
// first, then pico2wave, then the in-process builtin.
func NewRegistry(cfg Config) *Registry {
	return &Registry{
		engines: []Engine{
			NewEspeakEngine(cfg),
			NewPicoEngine(cfg),
			NewBuiltinEngine(cfg),
		},
	}
}

// NewRegistryWith builds a registry from an explicit engine list. Used by
// tests and by callers that need a restricted set.
func NewRegistryWith(engines ...Engine) *Registry {
	return &Registry{engines: engines}
}

// Engines returns the engines in priority order.
func (r *Registry) Engines() []Engine {
	return r.engines
}

// Lookup finds an engine by name.
func (r *Registry) Lookup(name string) (Engine, bool) {
	for _, e := range r.engines {
		if e.Name() == name {
			return e, true
		}
	}
	return nil, false
}

// Names returns the engine identifiers in priority order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.engines))
	for _, e := range r.engines {
		names = append(names, e.Name())
	}
	return names
}
