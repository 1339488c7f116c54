package main

import "sync"

// StateValue is an observable value. Observers run synchronously on the
// goroutine that changed the value, after the value is stored; they must not
// block or call back into whatever issued the change.
type StateValue[T comparable] struct {
	mu        sync.RWMutex
	value     T
	nextID    int
	observers map[int]func(T)
}

func NewStateValue[T comparable](initial T) *StateValue[T] {
	return &StateValue[T]{
		value:     initial,
		observers: make(map[int]func(T)),
	}
}

func (s *StateValue[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores v and notifies observers if it differs from the current value.
func (s *StateValue[T]) Set(v T) bool {
	s.mu.Lock()
	if s.value == v {
		s.mu.Unlock()
		return false
	}
	s.value = v
	fns := make([]func(T), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
	return true
}

// Subscribe registers fn and returns a function that removes it.
func (s *StateValue[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}
