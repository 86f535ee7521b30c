package engine

import "context"

// MockEngine implements Engine for testing. It records calls and can be
// scripted to be unavailable or to fail synthesis.
type MockEngine struct {
	// EngineName is returned by Name.
	EngineName string

	// AvailableErr is returned by Available.
	AvailableErr error

	// SynthesizeErr makes Synthesize fail when set.
	SynthesizeErr error

	// Result is returned by a successful Synthesize. When nil, a small
	// in-memory Audio is fabricated.
	Result *Audio

	// Call counters for assertions.
	AvailableCalls  int
	SynthesizeCalls int
}

// Name implements Engine.
func (e *MockEngine) Name() string {
	if e.EngineName == "" {
		return "mock"
	}
	return e.EngineName
}

// Available implements Engine.
func (e *MockEngine) Available() error {
	e.AvailableCalls++
	return e.AvailableErr
}

// Synthesize implements Engine.
func (e *MockEngine) Synthesize(_ context.Context, text string) (*Audio, error) {
	e.SynthesizeCalls++
	if e.SynthesizeErr != nil {
		return nil, e.SynthesizeErr
	}
	if e.Result != nil {
		return e.Result, nil
	}
	// Fabricate a little audio so callers have something to hand off.
	return &Audio{Data: make([]byte, len(text)+1)}, nil
}

var _ Engine = (*MockEngine)(nil)
