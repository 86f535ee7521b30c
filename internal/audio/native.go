package audio

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"

	"github.com/dgnsrekt/pisay/internal/engine"
)

// NativePlayer plays WAV audio in-process through oto, for the builtin
// engine path that must not spawn external tools. The WAV container is
// decoded with beep and fed to oto as signed 16-bit little-endian PCM.
type NativePlayer struct{}

// NewNativePlayer creates the in-process player.
func NewNativePlayer() *NativePlayer {
	return &NativePlayer{}
}

// Play implements Player. The device spec is only meaningful to aplay;
// in-process output always goes to the system default sink.
func (p *NativePlayer) Play(ctx context.Context, audio *engine.Audio, device string) error {
	if device != "" {
		log.Warn("In-process playback ignores the device spec", "device", device)
	}

	rc, err := audio.Reader()
	if err != nil {
		return err
	}
	streamer, format, err := wav.Decode(rc)
	if err != nil {
		rc.Close() //nolint:errcheck
		return fmt.Errorf("unable to decode WAV: %w", err)
	}
	defer streamer.Close() //nolint:errcheck

	// pisay is one-shot, so a fresh oto context per run is fine.
	op := &oto.NewContextOptions{
		SampleRate:   int(format.SampleRate),
		ChannelCount: format.NumChannels,
		Format:       oto.FormatSignedInt16LE,
	}
	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("unable to open audio output: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(newPCMReader(streamer, format.NumChannels))
	player.Play()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			_ = player.Close()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	if err := player.Close(); err != nil {
		return fmt.Errorf("unable to close audio output: %w", err)
	}
	return nil
}

// pcmReader adapts a beep streamer into the interleaved s16le byte stream
// oto consumes.
type pcmReader struct {
	streamer beep.Streamer
	channels int
	buf      [][2]float64
	pending  []byte
}

func newPCMReader(streamer beep.Streamer, channels int) *pcmReader {
	if channels < 1 {
		channels = 1
	}
	return &pcmReader{
		streamer: streamer,
		channels: channels,
		buf:      make([][2]float64, 512),
	}
}

func (r *pcmReader) Read(p []byte) (int, error) {
	if len(r.pending) == 0 {
		n, ok := r.streamer.Stream(r.buf)
		if n == 0 {
			if !ok {
				return 0, io.EOF
			}
			return 0, nil
		}
		frame := 2 * r.channels
		r.pending = make([]byte, 0, n*frame)
		for i := 0; i < n; i++ {
			r.pending = appendSample(r.pending, r.buf[i][0])
			if r.channels > 1 {
				r.pending = appendSample(r.pending, r.buf[i][1])
			}
		}
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

func appendSample(b []byte, v float64) []byte {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	s := int16(v * 32767)
	return append(b, byte(s), byte(s>>8))
}

var _ Player = (*NativePlayer)(nil)
