package webhook

import (
	"context"
	"sync"
	"time"
)

// fakeStore is an in-memory Store with the same atomicity guarantees as the
// Redis-backed adapter. failAll simulates a full store outage; failSetKeys
// injects write failures for specific keys only.
type fakeStore struct {
	mu          sync.Mutex
	data        map[string]string
	counters    map[string]int64
	calls       int
	failAll     error
	failSetKeys map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		data:        make(map[string]string),
		counters:    make(map[string]int64),
		failSetKeys: make(map[string]error),
	}
}

func (s *fakeStore) SetIfAbsent(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failAll != nil {
		return false, s.failAll
	}
	if err := s.failSetKeys[key]; err != nil {
		return false, err
	}
	if _, exists := s.data[key]; exists {
		return false, nil
	}
	s.data[key] = value
	return true, nil
}

func (s *fakeStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failAll != nil {
		return "", s.failAll
	}
	v, exists := s.data[key]
	if !exists {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (s *fakeStore) CompareAndDelete(_ context.Context, key, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failAll != nil {
		return false, s.failAll
	}
	if s.data[key] != value {
		return false, nil
	}
	delete(s.data, key)
	return true, nil
}

func (s *fakeStore) Increment(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failAll != nil {
		return 0, s.failAll
	}
	s.counters[key]++
	return s.counters[key], nil
}

func (s *fakeStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.data[key]
	return exists
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
