package pipeline

import "sync"

// Operator key bindings, matching the original collection tool.
const (
	KeySaveFace     = ' '
	KeySavePortrait = 'p'
	KeyQuit         = 'q'
	KeyEscape       = 27
)

// Signals holds the one-shot operator flags. A flag is set by the input
// source and cleared by the first face it applies to, so each keypress
// triggers at most one save even when a frame contains several faces. The
// mutex covers the handoff from the key-reader goroutine to the loop.
type Signals struct {
	mu           sync.Mutex
	saveFace     bool
	savePortrait bool
	exit         bool
}

// NewSignals returns a signal set with nothing pending.
func NewSignals() *Signals {
	return &Signals{}
}

// Apply maps a keypress onto the matching flag. Unknown keys are ignored.
func (s *Signals) Apply(key byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case KeySaveFace:
		s.saveFace = true
	case KeySavePortrait:
		s.savePortrait = true
	case KeyQuit, KeyEscape:
		s.exit = true
	}
}

// RequestSaveFace marks a pending face save.
func (s *Signals) RequestSaveFace() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveFace = true
}

// RequestSavePortrait marks a pending portrait save.
func (s *Signals) RequestSavePortrait() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.savePortrait = true
}

// RequestExit marks the loop for termination between frames.
func (s *Signals) RequestExit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exit = true
}

// TakeSaveFace consumes a pending face save.
func (s *Signals) TakeSaveFace() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.saveFace
	s.saveFace = false
	return pending
}

// TakeSavePortrait consumes a pending portrait save.
func (s *Signals) TakeSavePortrait() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.savePortrait
	s.savePortrait = false
	return pending
}

// Exiting reports whether the operator asked to quit. Not one-shot: once
// set it stays set.
func (s *Signals) Exiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exit
}
