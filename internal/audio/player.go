// Package audio routes synthesized audio to the system output, either by
// handing it to aplay or by playing it in-process.
package audio

import (
	"context"

	"github.com/dgnsrekt/pisay/internal/engine"
)

// Player sends one piece of synthesized audio to an output sink. The
// device spec is opaque here; only the playback utility interprets it.
type Player interface {
	Play(ctx context.Context, audio *engine.Audio, device string) error
}
