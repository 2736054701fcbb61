package query

import "sync"

// Token identifies a request begun on a Sequencer.
type Token uint64

// Sequencer discards responses that arrive after a newer request was
// issued. Requests are not cancelled; their late results are ignored.
type Sequencer struct {
	mu     sync.Mutex
	latest Token
}

// Begin starts a request and makes it the latest one.
func (s *Sequencer) Begin() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// Current reports whether t is still the latest request.
func (s *Sequencer) Current(t Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t == s.latest
}

// Commit runs apply if t is still the latest request and reports whether it
// did. apply runs under the sequencer's lock, so a newer Begin cannot
// interleave with it.
func (s *Sequencer) Commit(t Token, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.latest {
		return false
	}
	apply()
	return true
}

// Invalidate makes every request begun so far stale, e.g. when the view
// that issued them goes away.
func (s *Sequencer) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
}
