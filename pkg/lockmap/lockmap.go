// Copyright 2023 Meta Platforms, Inc. and affiliates.
//
// Redistribution and use in source and binary forms, with or without modification, are permitted provided that the following conditions are met:
//
// 1. Redistributions of source code must retain the above copyright notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright notice, this list of conditions and the following disclaimer in the documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

// Package lockmap provides per-key mutual exclusion.
package lockmap

import (
	"sync"
)

// LockMap is a set of mutexes addressed by a key. A mutex exists only
// while somebody holds or waits for it.
type LockMap[K comparable, V any] struct {
	globalLock sync.Mutex
	lockMap    map[K]*Unlocker[K, V]
}

// NewLockMap returns an instance of LockMap.
func NewLockMap[K comparable, V any]() *LockMap[K, V] {
	return &LockMap[K, V]{
		lockMap: map[K]*Unlocker[K, V]{},
	}
}

// Lock locks the key.
//
// The Unlocker is shared by everybody locking the same key, so a value
// stored into it by one holder is seen by the next one as long as the
// key stays referenced.
func (m *LockMap[K, V]) Lock(key K) *Unlocker[K, V] {
	m.globalLock.Lock()

	l := m.lockMap[key]
	if l == nil {
		l = &Unlocker[K, V]{m: m, key: key}
		m.lockMap[key] = l
	}
	l.refCount++
	m.globalLock.Unlock()

	l.locker.Lock()
	return l
}

// Len returns the amount of keys locked or waited for.
func (m *LockMap[K, V]) Len() int {
	m.globalLock.Lock()
	defer m.globalLock.Unlock()
	return len(m.lockMap)
}
