package event

import "sync"

// MemorySink records emitted events for inspection in tests.
type MemorySink struct {
	mutex  sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Emit(e Event) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.events = append(s.events, e)
}

func (s *MemorySink) Events() []Event {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *MemorySink) EventsNamed(name string) []Event {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var out []Event
	for _, e := range s.events {
		if e.Name() == name {
			out = append(out, e)
		}
	}
	return out
}
