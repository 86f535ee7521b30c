package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// espeakBinaries lists the binaries probed for the espeak engine, in
// preference order. espeak-ng is the maintained fork; plain espeak still
// ships on older images.
var espeakBinaries = []string{"espeak-ng", "espeak"}

// EspeakEngine synthesizes speech with espeak/espeak-ng, capturing the WAV
// the tool writes to stdout. Playback is handed the bytes as a stream, so
// no intermediate file is created.
type EspeakEngine struct {
	voice     string
	amplitude int
	speed     int
}

// NewEspeakEngine creates the espeak engine from config.
func NewEspeakEngine(cfg Config) *EspeakEngine {
	return &EspeakEngine{
		voice:     cfg.Language,
		amplitude: cfg.Amplitude,
		speed:     cfg.Speed,
	}
}

// Name implements Engine.
func (e *EspeakEngine) Name() string { return "espeak" }

// Available implements Engine. The espeak path streams into aplay, so both
// binaries must be present.
func (e *EspeakEngine) Available() error {
	if _, err := e.lookPath(); err != nil {
		return fmt.Errorf("espeak-ng/espeak not found in PATH: %w", err)
	}
	if _, err := exec.LookPath("aplay"); err != nil {
		return fmt.Errorf("aplay not found in PATH: %w", err)
	}
	return nil
}

func (e *EspeakEngine) lookPath() (string, error) {
	var err error
	for _, bin := range espeakBinaries {
		var path string
		if path, err = exec.LookPath(bin); err == nil {
			return path, nil
		}
	}
	return "", err
}

// Synthesize implements Engine. Runs `espeak --stdout` and captures the
// WAV output.
func (e *EspeakEngine) Synthesize(ctx context.Context, text string) (*Audio, error) {
	bin, err := e.lookPath()
	if err != nil {
		return nil, fmt.Errorf("espeak-ng/espeak not found in PATH: %w", err)
	}

	args := []string{"--stdout"}
	if e.voice != "" {
		args = append(args, "-v", e.voice)
	}
	if e.amplitude > 0 {
		args = append(args, "-a", strconv.Itoa(e.amplitude))
	}
	if e.speed > 0 {
		args = append(args, "-s", strconv.Itoa(e.speed))
	}
	args = append(args, text)

	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %w, stderr: %s", bin, err, stderr.String())
	}

	wav := stdout.Bytes()
	if len(wav) == 0 {
		return nil, fmt.Errorf("%s produced no audio output, stderr: %s", bin, stderr.String())
	}

	return &Audio{Data: wav}, nil
}

var _ Engine = (*EspeakEngine)(nil)
