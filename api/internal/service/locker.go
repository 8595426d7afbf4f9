package service

import (
	"context"
	"sync"
)

type keyLock struct {
	sem  chan struct{} // holds one token while locked
	refs int           // holder + waiters
}

// LockerService is a keyed in-process mutex. Waiting can be cancelled,
// entries are dropped once nobody holds or waits for them.
type LockerService struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

func NewLockerService() *LockerService {
	return &LockerService{locks: make(map[string]*keyLock)}
}

func (s *LockerService) Lock(ctx context.Context, key string) error {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &keyLock{sem: make(chan struct{}, 1)}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	select {
	case l.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		s.release(key, l)
		return ctx.Err()
	}
}

func (s *LockerService) Unlock(key string) {
	s.mu.Lock()
	l, ok := s.locks[key]
	s.mu.Unlock()
	if !ok {
		return
	}

	select {
	case <-l.sem:
		s.release(key, l)
	default: // not locked
	}
}

func (s *LockerService) release(key string, l *keyLock) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(s.locks, key)
	}
}
