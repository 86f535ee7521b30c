package audio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgnsrekt/pisay/internal/engine"
)

// installFakeAplay puts a fake aplay on PATH that records its arguments
// and stdin.
func installFakeAplay(t *testing.T, script string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "aplay")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil { //nolint:gosec
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)
}

func TestAplayPlayFile(t *testing.T) {
	capture := filepath.Join(t.TempDir(), "args")
	t.Setenv("APLAY_ARGS", capture)
	installFakeAplay(t, `echo "$@" > "$APLAY_ARGS"`)

	wav := filepath.Join(t.TempDir(), "out.wav")
	if err := os.WriteFile(wav, []byte("RIFFdata"), 0o600); err != nil {
		t.Fatal(err)
	}

	p := NewAplayPlayer()
	if err := p.Play(context.Background(), &engine.Audio{Path: wav}, "plughw:0,0"); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	raw, err := os.ReadFile(capture)
	if err != nil {
		t.Fatal(err)
	}
	args := string(raw)
	if !strings.Contains(args, "-D plughw:0,0") {
		t.Errorf("args %q missing device selector", args)
	}
	if !strings.Contains(args, wav) {
		t.Errorf("args %q missing file path", args)
	}
}

func TestAplayPlayStream(t *testing.T) {
	captureArgs := filepath.Join(t.TempDir(), "args")
	captureIn := filepath.Join(t.TempDir(), "stdin")
	t.Setenv("APLAY_ARGS", captureArgs)
	t.Setenv("APLAY_STDIN", captureIn)
	installFakeAplay(t, `echo "$@" > "$APLAY_ARGS"; cat > "$APLAY_STDIN"`)

	p := NewAplayPlayer()
	if err := p.Play(context.Background(), &engine.Audio{Data: []byte("RIFFstream")}, ""); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	in, err := os.ReadFile(captureIn)
	if err != nil {
		t.Fatal(err)
	}
	if string(in) != "RIFFstream" {
		t.Errorf("stdin = %q, want streamed WAV bytes", in)
	}
	args, err := os.ReadFile(captureArgs)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(args), "-D") {
		t.Errorf("args %q carry a device selector with no device set", args)
	}
}

// TestAplayPlayFailure verifies the playback utility's diagnostics are
// preserved on non-zero exit.
func TestAplayPlayFailure(t *testing.T) {
	installFakeAplay(t, `echo "aplay: main:831: audio open error: No such device" >&2; exit 1`)

	p := NewAplayPlayer()
	err := p.Play(context.Background(), &engine.Audio{Data: []byte("RIFF")}, "plughw:9,9")
	if err == nil {
		t.Fatal("Play() = nil error, want failure")
	}
	if !strings.Contains(err.Error(), "No such device") {
		t.Errorf("error %q lost the aplay diagnostic", err)
	}
}

func TestAplayAvailable(t *testing.T) {
	installFakeAplay(t, "exit 0")
	if err := NewAplayPlayer().Available(); err != nil {
		t.Errorf("Available() = %v, want nil", err)
	}

	t.Setenv("PATH", t.TempDir())
	if err := NewAplayPlayer().Available(); err == nil {
		t.Error("Available() = nil with empty PATH, want error")
	}
}
