package speech

import "errors"

// Dispatch errors. Each maps to a distinct exit code via ExitCode.
var (
	// ErrEmptyText indicates there was no text to speak.
	ErrEmptyText = errors.New("no text to speak")

	// ErrUnknownEngine indicates --engine named an engine that does not exist.
	ErrUnknownEngine = errors.New("unknown speech engine")

	// ErrEngineUnavailable indicates the explicitly requested engine is not
	// installed or not usable. An explicit preference never falls back.
	ErrEngineUnavailable = errors.New("requested speech engine is not available")

	// ErrNoEngineAvailable indicates no engine at all could be used.
	ErrNoEngineAvailable = errors.New("no speech engine available")

	// ErrSynthesisFailed indicates the chosen engine exited non-zero or
	// produced no audio.
	ErrSynthesisFailed = errors.New("speech synthesis failed")

	// ErrPlaybackFailed indicates the playback utility exited non-zero.
	ErrPlaybackFailed = errors.New("audio playback failed")
)

// Exit codes, one per failure kind. Zero is success, including simulation;
// one is left to cobra for usage errors.
const (
	ExitOK                = 0
	ExitError             = 1
	ExitInvalidInput      = 2
	ExitNoEngine          = 3
	ExitEngineUnavailable = 4
	ExitSynthesisFailed   = 5
	ExitPlaybackFailed    = 6
)

// ExitCode maps an error from Speak to its documented exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrEmptyText):
		return ExitInvalidInput
	case errors.Is(err, ErrNoEngineAvailable):
		return ExitNoEngine
	case errors.Is(err, ErrUnknownEngine), errors.Is(err, ErrEngineUnavailable):
		return ExitEngineUnavailable
	case errors.Is(err, ErrSynthesisFailed):
		return ExitSynthesisFailed
	case errors.Is(err, ErrPlaybackFailed):
		return ExitPlaybackFailed
	default:
		return ExitError
	}
}
