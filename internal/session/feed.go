package session

import (
	"sync"

	"scholarhub-client/internal/models"
)

// IdentityFeed broadcasts identity changes to interested listeners, so
// navigation chrome and guards observe profile updates without re-hydrating.
// Delivery is fire-and-forget; listeners run on their own goroutines.
type IdentityFeed struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(*models.User)
}

func NewIdentityFeed() *IdentityFeed {
	return &IdentityFeed{listeners: make(map[int]func(*models.User))}
}

// Subscribe registers fn and returns an unsubscribe function.
func (f *IdentityFeed) Subscribe(fn func(*models.User)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	}
}

// Publish sends user to every current listener. A nil user signals logout.
func (f *IdentityFeed) Publish(user *models.User) {
	f.mu.Lock()
	fns := make([]func(*models.User), 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		go fn(user)
	}
}
