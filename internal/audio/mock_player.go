package audio

import (
	"context"

	"github.com/dgnsrekt/pisay/internal/engine"
)

// MockPlayer implements Player for testing. It records what it was asked
// to play without producing sound.
type MockPlayer struct {
	// Err makes Play fail when set.
	Err error

	// PlayCalls counts invocations.
	PlayCalls int

	// LastDevice and LastAudio record the most recent call.
	LastDevice string
	LastAudio  *engine.Audio
}

// Play implements Player.
func (p *MockPlayer) Play(_ context.Context, audio *engine.Audio, device string) error {
	p.PlayCalls++
	p.LastDevice = device
	p.LastAudio = audio
	return p.Err
}

var _ Player = (*MockPlayer)(nil)
