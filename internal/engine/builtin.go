package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/tzneal/gopicotts"
)

// BuiltinEngine synthesizes speech in-process through the SVOX Pico
// library (gopicotts). It is the pure fallback path: no external tool is
// spawned for synthesis, and playback goes through the in-process player
// rather than aplay.
type BuiltinEngine struct {
	language gopicotts.LanguageName
	tempDir  string
}

// NewBuiltinEngine creates the in-process engine from config.
func NewBuiltinEngine(cfg Config) *BuiltinEngine {
	lang := gopicotts.ParseLanguageName(cfg.Language)
	tempDir := cfg.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &BuiltinEngine{
		language: lang,
		tempDir:  tempDir,
	}
}

// Name implements Engine.
func (e *BuiltinEngine) Name() string { return "builtin" }

// Available implements Engine. The library is compiled in, but it loads
// its voice resource files at runtime, so a quick init round-trip is the
// only reliable probe.
func (e *BuiltinEngine) Available() error {
	opts := gopicotts.DefaultOptions
	opts.Language = e.language

	eng, err := gopicotts.NewEngine(opts)
	if err != nil {
		return fmt.Errorf("pico voice resources unavailable: %w", err)
	}
	eng.Close()
	return nil
}

// Synthesize implements Engine. The library only exposes file output, so
// the WAV goes through a temp file owned by the returned Audio.
func (e *BuiltinEngine) Synthesize(ctx context.Context, text string) (*Audio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := gopicotts.DefaultOptions
	opts.Language = e.language

	eng, err := gopicotts.NewEngine(opts)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize pico engine: %w", err)
	}
	defer eng.Close()

	f, err := os.CreateTemp(e.tempDir, "pisay-*.wav")
	if err != nil {
		return nil, fmt.Errorf("unable to create temp WAV file: %w", err)
	}
	wav := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(wav)
		return nil, fmt.Errorf("unable to close temp WAV file: %w", err)
	}

	eng.SetFileOutput(wav)
	eng.SendText(text)
	// Flush in case the input has no end-of-sentence marker.
	eng.FlushSendText()
	eng.CloseFileOutput()

	info, err := os.Stat(wav)
	if err != nil || info.Size() == 0 {
		_ = os.Remove(wav)
		return nil, fmt.Errorf("pico engine produced no audio output")
	}

	return NewFileAudio(wav), nil
}

var _ Engine = (*BuiltinEngine)(nil)
