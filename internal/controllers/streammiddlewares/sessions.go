package streammiddlewares

import (
	"sync"

	"github.com/flavioribeiro/isdbcc/internal/entities"
)

// sessions keeps a middleware state per stream, released once the stream
// context is done.
type sessions[T any] struct {
	mu     sync.Mutex
	states map[*entities.StreamParameters]T
	newT   func(sp *entities.StreamParameters) T
}

func newSessions[T any](newT func(sp *entities.StreamParameters) T) *sessions[T] {
	return &sessions[T]{
		states: map[*entities.StreamParameters]T{},
		newT:   newT,
	}
}

func (s *sessions[T]) get(sp *entities.StreamParameters) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.states[sp]; ok {
		return st
	}
	st := s.newT(sp)
	s.states[sp] = st

	if sp.Ctx != nil {
		go func() {
			<-sp.Ctx.Done()
			s.mu.Lock()
			delete(s.states, sp)
			s.mu.Unlock()
		}()
	}
	return st
}

func (s *sessions[T]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}
