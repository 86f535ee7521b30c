package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/dgnsrekt/pisay/internal/engine"
)

// AplayPlayer plays audio through the ALSA aplay utility. File-backed
// audio is passed as a path argument; in-memory audio is streamed over
// stdin. Both handoffs land on the same aplay invocation shape.
type AplayPlayer struct{}

// NewAplayPlayer creates the aplay-backed player.
func NewAplayPlayer() *AplayPlayer {
	return &AplayPlayer{}
}

// Available reports whether aplay can be found.
func (p *AplayPlayer) Available() error {
	if _, err := exec.LookPath("aplay"); err != nil {
		return fmt.Errorf("aplay not found in PATH: %w", err)
	}
	return nil
}

// Play implements Player.
func (p *AplayPlayer) Play(ctx context.Context, audio *engine.Audio, device string) error {
	var args []string
	if device != "" {
		args = append(args, "-D", device)
	}

	var stdin io.Reader
	if audio.Path != "" {
		args = append(args, audio.Path)
	} else {
		stdin = bytes.NewReader(audio.Data)
	}

	cmd := exec.CommandContext(ctx, "aplay", args...)
	cmd.Stdin = stdin

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("aplay failed: %w, stderr: %s", err, stderr.String())
	}
	return nil
}

var _ Player = (*AplayPlayer)(nil)
