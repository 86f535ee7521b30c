package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// PicoEngine synthesizes speech with pico2wave. The tool only writes to a
// file, so this is the two-step file-handoff path: synthesize to a temp
// WAV, play it, remove it.
type PicoEngine struct {
	language string
	tempDir  string
}

// NewPicoEngine creates the pico2wave engine from config.
func NewPicoEngine(cfg Config) *PicoEngine {
	lang := cfg.Language
	if lang == "" {
		lang = "en-US"
	}
	tempDir := cfg.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &PicoEngine{
		language: lang,
		tempDir:  tempDir,
	}
}

// Name implements Engine.
func (e *PicoEngine) Name() string { return "pico" }

// Available implements Engine. pico2wave emits a file that aplay plays, so
// both must be present.
func (e *PicoEngine) Available() error {
	if _, err := exec.LookPath("pico2wave"); err != nil {
		return fmt.Errorf("pico2wave not found in PATH: %w", err)
	}
	if _, err := exec.LookPath("aplay"); err != nil {
		return fmt.Errorf("aplay not found in PATH: %w", err)
	}
	return nil
}

// Synthesize implements Engine. Writes the WAV to a temp file owned by the
// returned Audio; Close removes it.
func (e *PicoEngine) Synthesize(ctx context.Context, text string) (*Audio, error) {
	f, err := os.CreateTemp(e.tempDir, "pisay-*.wav")
	if err != nil {
		return nil, fmt.Errorf("unable to create temp WAV file: %w", err)
	}
	wav := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(wav)
		return nil, fmt.Errorf("unable to close temp WAV file: %w", err)
	}

	cmd := exec.CommandContext(ctx, "pico2wave", "-w", wav, "-l", e.language, text)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(wav)
		return nil, fmt.Errorf("pico2wave failed: %w, stderr: %s", err, stderr.String())
	}

	// pico2wave can exit zero and still write nothing useful when the
	// language is unknown.
	info, err := os.Stat(wav)
	if err != nil || info.Size() == 0 {
		_ = os.Remove(wav)
		return nil, fmt.Errorf("pico2wave produced no audio output, stderr: %s", stderr.String())
	}

	return NewFileAudio(wav), nil
}

var _ Engine = (*PicoEngine)(nil)
