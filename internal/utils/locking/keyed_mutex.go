// Package locking provides an exclusive-access scope keyed by an arbitrary
// string, used by the ledger engine to serialize postings per account while
// letting postings against different accounts proceed in parallel.
package locking

import "sync"

// KeyedMutex hands out one mutex per key. Locks for distinct keys are
// independent. Mutexes are never evicted; the key space (account ids) is
// bounded by the account table.
type KeyedMutex struct {
	mutexes sync.Map // key -> *sync.Mutex
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{}
}

// Lock acquires the mutex for key, blocking until it is available.
func (k *KeyedMutex) Lock(key string) {
	m, _ := k.mutexes.LoadOrStore(key, &sync.Mutex{})
	m.(*sync.Mutex).Lock()
}

// Unlock releases the mutex for key. It panics if the mutex is not held,
// matching sync.Mutex semantics.
func (k *KeyedMutex) Unlock(key string) {
	m, ok := k.mutexes.Load(key)
	if !ok {
		panic("locking: unlock of unknown key " + key)
	}
	m.(*sync.Mutex).Unlock()
}
