package command

import "sync"

// InFlight tracks requests that are currently being handled so a redelivered
// message is processed at most once at a time.
type InFlight struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewInFlight() *InFlight {
	return &InFlight{active: make(map[string]struct{})}
}

// TryAcquire marks id as in flight. It returns false if id is already being handled.
// The returned release func is idempotent.
func (f *InFlight) TryAcquire(id string) (release func(), ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.active[id]; busy {
		return func() {}, false
	}
	f.active[id] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.active, id)
			f.mu.Unlock()
		})
	}, true
}

// Len returns the number of requests in flight.
func (f *InFlight) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.active)
}
