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

package inventory

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto"
	"github.com/facebookincubator/go-belt/tool/logger"
	lru "github.com/hashicorp/golang-lru"
	"github.com/klauspost/cpuid/v2"

	"github.com/immune-gmbh/hwinventory/pkg/firmwaretable"
	"github.com/immune-gmbh/hwinventory/pkg/lockmap"
	"github.com/immune-gmbh/hwinventory/pkg/smbios"
)

const storeCacheKey = "store"

type decodeCache interface {
	Get(key any) (value any, ok bool)
	Add(key, value any)
	Len() int
}

type dummyCache struct{}

var _ decodeCache = (*dummyCache)(nil)

func (dummyCache) Get(key any) (value any, ok bool) {
	return nil, false
}

func (dummyCache) Add(key, value any) {}

func (dummyCache) Len() int {
	return 0
}

// Collector acquires tables through a Provider and projects them.
//
// An acquired table is reused for the configured TTL, and identical
// tables (by the digest of the raw bytes) are decoded only once. It is
// safe for concurrent use.
type Collector struct {
	provider firmwaretable.Provider
	config   config

	storeCache  *ristretto.Cache
	decodeCache decodeCache
	decodeLocks *lockmap.LockMap[[32]byte, *smbios.RecordStore]
}

// NewCollector returns a new instance of Collector.
func NewCollector(provider firmwaretable.Provider, opts ...Option) (*Collector, error) {
	c := &Collector{
		provider:    provider,
		config:      getConfig(opts...),
		decodeCache: dummyCache{},
		decodeLocks: lockmap.NewLockMap[[32]byte, *smbios.RecordStore](),
	}

	if c.config.TTL > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters:        100,
			MaxCost:            16,
			BufferItems:        64,
			IgnoreInternalCost: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create the table cache: %w", err)
		}
		c.storeCache = cache
	}

	if c.config.DecodeCacheSize > 0 {
		cache, err := lru.New2Q(c.config.DecodeCacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create the decode cache: %w", err)
		}
		c.decodeCache = cache
	}

	return c, nil
}

// Close releases the resources of the caches.
func (c *Collector) Close() {
	if c.storeCache != nil {
		c.storeCache.Close()
	}
}

// Invalidate forgets the acquired table, so the next request
// asks the provider again.
func (c *Collector) Invalidate() {
	if c.storeCache != nil {
		c.storeCache.Del(storeCacheKey)
	}
}

// Store returns the decoded table.
func (c *Collector) Store(ctx context.Context) (*smbios.RecordStore, error) {
	if c.storeCache != nil {
		if v, ok := c.storeCache.Get(storeCacheKey); ok {
			logger.FromCtx(ctx).Tracef("reusing the acquired SMBIOS table")
			return v.(*smbios.RecordStore), nil
		}
	}

	entryPoint, table, err := c.provider.AcquireTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to acquire the SMBIOS table: %w", err)
	}

	store, err := c.decode(ctx, entryPoint, table)
	if err != nil {
		return nil, err
	}

	if c.storeCache != nil {
		c.storeCache.SetWithTTL(storeCacheKey, store, 1, c.config.TTL)
		c.storeCache.Wait()
	}
	return store, nil
}

func (c *Collector) decode(ctx context.Context, entryPoint, table []byte) (*smbios.RecordStore, error) {
	digest := tableDigest(entryPoint, table)

	l := c.decodeLocks.Lock(digest)
	defer l.Unlock()
	if l.IsSet {
		return l.Value, nil
	}
	if v, ok := c.decodeCache.Get(digest); ok {
		logger.FromCtx(ctx).Tracef("the SMBIOS table %X is already decoded", digest[:8])
		return v.(*smbios.RecordStore), nil
	}

	store, err := smbios.Scan(ctx, entryPoint, table)
	if err != nil {
		return nil, err
	}
	c.decodeCache.Add(digest, store)
	l.Set(store)
	return store, nil
}

// BIOS returns the BIOS information.
func (c *Collector) BIOS(ctx context.Context) (BIOSInfo, error) {
	store, err := c.Store(ctx)
	if err != nil {
		return BIOSInfo{}, err
	}
	return BIOS(store), nil
}

// System returns the system information.
func (c *Collector) System(ctx context.Context) (SystemInfo, error) {
	store, err := c.Store(ctx)
	if err != nil {
		return SystemInfo{}, err
	}
	return System(store), nil
}

// Board returns the base board information.
func (c *Collector) Board(ctx context.Context) (BoardInfo, error) {
	store, err := c.Store(ctx)
	if err != nil {
		return BoardInfo{}, err
	}
	return Board(store), nil
}

// Processor returns the information of the first processor.
func (c *Collector) Processor(ctx context.Context) (ProcessorInfo, error) {
	store, err := c.Store(ctx)
	if err != nil {
		return ProcessorInfo{}, err
	}
	return c.processor(store), nil
}

func (c *Collector) processor(store *smbios.RecordStore) ProcessorInfo {
	info := Processor(store)
	if c.config.CPUIDFallback {
		fillFromCPUID(&info, cpuid.CPU)
	}
	return info
}

// Memory returns the memory information.
func (c *Collector) Memory(ctx context.Context) (MemoryInfo, error) {
	store, err := c.Store(ctx)
	if err != nil {
		return MemoryInfo{}, err
	}
	return Memory(store), nil
}

// Chassis returns the enclosure information.
func (c *Collector) Chassis(ctx context.Context) (ChassisInfo, error) {
	store, err := c.Store(ctx)
	if err != nil {
		return ChassisInfo{}, err
	}
	return Chassis(store), nil
}

// OEMStrings returns the OEM strings.
func (c *Collector) OEMStrings(ctx context.Context) ([]string, error) {
	store, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return OEMStrings(store), nil
}

// All returns all the categories.
func (c *Collector) All(ctx context.Context) (AllInfo, error) {
	store, err := c.Store(ctx)
	if err != nil {
		return AllInfo{}, err
	}
	info := All(store)
	info.Processor = c.processor(store)
	return info, nil
}

// Fingerprint returns the fingerprint of the machine.
func (c *Collector) Fingerprint(ctx context.Context) (Fingerprint, error) {
	store, err := c.Store(ctx)
	if err != nil {
		return Fingerprint{}, err
	}
	return FingerprintOf(store), nil
}
