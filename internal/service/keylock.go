package service

import (
	"context"
	"sort"
	"sync"

	"bitpesa-lending/pkg/apperror"
)

// keyedMutex serializes work per key. Slots are created on demand and
// dropped once nobody holds or waits for them.
type keyedMutex struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{slots: make(map[string]*slot)}
}

// Lock acquires every key in sorted order and returns the release func.
// Waiting stops with LockTimeout when ctx is done; held keys are released.
func (k *keyedMutex) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = sortedUnique(keys)
	held := make([]string, 0, len(keys))
	for _, key := range keys {
		s := k.ref(key)
		select {
		case s.ch <- struct{}{}:
			held = append(held, key)
		case <-ctx.Done():
			k.unref(key)
			k.release(held)
			return nil, apperror.ErrLockTimeout(ctx.Err())
		}
	}
	return func() { k.release(held) }, nil
}

func (k *keyedMutex) ref(key string) *slot {
	k.mu.Lock()
	defer k.mu.Unlock()
	s, ok := k.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		k.slots[key] = s
	}
	s.refs++
	return s
}

func (k *keyedMutex) unref(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	s := k.slots[key]
	s.refs--
	if s.refs == 0 {
		delete(k.slots, key)
	}
}

func (k *keyedMutex) release(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		k.mu.Lock()
		s := k.slots[keys[i]]
		<-s.ch
		s.refs--
		if s.refs == 0 {
			delete(k.slots, keys[i])
		}
		k.mu.Unlock()
	}
}

func sortedUnique(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	n := 0
	for i, key := range out {
		if i > 0 && key == out[n-1] {
			continue
		}
		out[n] = key
		n++
	}
	return out[:n]
}
