// Package speech implements the dispatch flow: validate the request, pick
// an engine, synthesize, and play (or report, in simulate mode).
package speech

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/pisay/internal/audio"
	"github.com/dgnsrekt/pisay/internal/engine"
)

// Request is one speak invocation, built once from the command line and
// discarded after the run.
type Request struct {
	// Text to speak. Must be non-empty.
	Text string

	// Device is an opaque output-sink spec forwarded to aplay.
	Device string

	// Engine is an explicit engine preference; empty means walk the
	// priority order.
	Engine string

	// Simulate reports the intended action without invoking anything.
	Simulate bool
}

// Dispatcher selects an engine and runs the synthesize-then-play flow.
type Dispatcher struct {
	registry *engine.Registry
	player   audio.Player // overrides per-engine player selection when set
	out      io.Writer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPlayer forces a single player for every engine. Used by tests.
func WithPlayer(p audio.Player) Option {
	return func(d *Dispatcher) { d.player = p }
}

// WithOutput redirects the simulate report, which otherwise goes to stdout.
func WithOutput(w io.Writer) Option {
	return func(d *Dispatcher) { d.out = w }
}

// NewDispatcher creates a Dispatcher over the given engine registry.
func NewDispatcher(registry *engine.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Speak runs one request to completion. Any intermediate file is removed
// on every exit path. Errors wrap the package sentinels, so callers can
// map them to exit codes with ExitCode.
func (d *Dispatcher) Speak(ctx context.Context, req Request) error {
	if strings.TrimSpace(req.Text) == "" {
		return ErrEmptyText
	}

	eng, err := d.selectEngine(req.Engine)
	if err != nil {
		return err
	}

	device := req.Device
	if device == "" {
		device = "default"
	}

	if req.Simulate {
		log.Debug("Simulating", "engine", eng.Name(), "device", device)
		fmt.Fprintf(d.out, "[simulate] would speak %d characters via %s (device: %s)\n",
			len(req.Text), eng.Name(), device)
		return nil
	}

	log.Debug("Synthesizing", "engine", eng.Name(), "chars", len(req.Text))
	aud, err := eng.Synthesize(ctx, req.Text)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrSynthesisFailed, eng.Name(), err)
	}
	defer aud.Close() //nolint:errcheck

	log.Debug("Playing", "engine", eng.Name(), "device", device)
	if err := d.playerFor(eng).Play(ctx, aud, req.Device); err != nil {
		return fmt.Errorf("%w: %s", ErrPlaybackFailed, err)
	}
	return nil
}

// selectEngine resolves the engine for a request. An explicit preference
// must exist and be available; with no preference the first available
// engine in registry order wins, making selection deterministic.
func (d *Dispatcher) selectEngine(preference string) (engine.Engine, error) {
	if preference != "" {
		eng, ok := d.registry.Lookup(preference)
		if !ok {
			return nil, fmt.Errorf("%w: %q (supported: %s)",
				ErrUnknownEngine, preference, strings.Join(d.registry.Names(), ", "))
		}
		if err := eng.Available(); err != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrEngineUnavailable, preference, err)
		}
		return eng, nil
	}

	var probes []string
	for _, eng := range d.registry.Engines() {
		err := eng.Available()
		if err == nil {
			return eng, nil
		}
		log.Debug("Engine unavailable", "engine", eng.Name(), "err", err)
		probes = append(probes, fmt.Sprintf("%s: %s", eng.Name(), err))
	}

	return nil, fmt.Errorf("%w:\n  %s\n\n%s",
		ErrNoEngineAvailable, strings.Join(probes, "\n  "), engine.InstallGuidance())
}

// playerFor picks the playback path for an engine: the builtin engine
// plays in-process, everything else goes through aplay.
func (d *Dispatcher) playerFor(eng engine.Engine) audio.Player {
	if d.player != nil {
		return d.player
	}
	if eng.Name() == "builtin" {
		return audio.NewNativePlayer()
	}
	return audio.NewAplayPlayer()
}
