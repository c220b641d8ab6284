package scanner

import "sync"

// StaticScanner is an in-memory Scanner over an explicit section list.
// It backs tests and embedders that compute layout themselves rather than
// reading it from a live document.
type StaticScanner struct {
	mu       sync.Mutex
	sections []Section
	watchers map[int]func()
	nextID   int
}

// NewStatic creates a StaticScanner seeded with the given sections.
func NewStatic(sections ...Section) *StaticScanner {
	return &StaticScanner{
		sections: append([]Section(nil), sections...),
		watchers: make(map[int]func()),
	}
}

// Scan returns a copy of the current section list.
func (s *StaticScanner) Scan() []Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Section(nil), s.sections...)
}

// Watch registers a change callback. Callbacks fire synchronously from the
// mutating call, in registration order.
func (s *StaticScanner) Watch(onChange func()) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = onChange
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

// SetSections replaces the section list and notifies watchers.
func (s *StaticScanner) SetSections(sections ...Section) {
	s.mu.Lock()
	s.sections = append([]Section(nil), sections...)
	s.mu.Unlock()
	s.notify()
}

// SetExpanded flips the collapse state of the section with the given ID and
// notifies watchers. Unknown IDs and non-conditional sections are ignored.
func (s *StaticScanner) SetExpanded(id string, expanded bool) {
	s.mu.Lock()
	changed := false
	for i := range s.sections {
		if s.sections[i].ID == id && s.sections[i].Conditional {
			if s.sections[i].Expanded != expanded {
				s.sections[i].Expanded = expanded
				changed = true
			}
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *StaticScanner) notify() {
	s.mu.Lock()
	cbs := make([]func(), 0, len(s.watchers))
	for _, cb := range s.watchers {
		cbs = append(cbs, cb)
	}
	s.mu.Unlock()

	for _, cb := range cbs {
		cb()
	}
}
