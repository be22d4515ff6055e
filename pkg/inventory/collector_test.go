package inventory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/klauspost/cpuid/v2"
	"github.com/stretchr/testify/require"

	"github.com/immune-gmbh/hwinventory/pkg/firmwaretable"
	"github.com/immune-gmbh/hwinventory/pkg/smbios/smbiostest"
)

type countingProvider struct {
	calls      int32
	entryPoint []byte
	table      []byte
	err        error
}

func (p *countingProvider) AcquireTable(ctx context.Context) ([]byte, []byte, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.err != nil {
		return nil, nil, p.err
	}
	return p.entryPoint, p.table, nil
}

func newSampleProvider() *countingProvider {
	b := smbiostest.SampleTable()
	return &countingProvider{entryPoint: b.EntryPoint3(3, 2), table: b.Bytes()}
}

func TestCollector(t *testing.T) {
	ctx := context.Background()

	t.Run("ttl", func(t *testing.T) {
		p := newSampleProvider()
		c, err := NewCollector(p)
		require.NoError(t, err)
		defer c.Close()

		system, err := c.System(ctx)
		require.NoError(t, err)
		require.Equal(t, "SN-123456", system.SerialNumber)

		bios, err := c.BIOS(ctx)
		require.NoError(t, err)
		require.Equal(t, "F.42", bios.Version)
		require.Equal(t, int32(1), atomic.LoadInt32(&p.calls))

		c.Invalidate()
		_, err = c.Store(ctx)
		require.NoError(t, err)
		require.Equal(t, int32(2), atomic.LoadInt32(&p.calls))
	})

	t.Run("decode_cache", func(t *testing.T) {
		p := newSampleProvider()
		c, err := NewCollector(p, OptionTTL(0))
		require.NoError(t, err)
		defer c.Close()

		first, err := c.Store(ctx)
		require.NoError(t, err)
		second, err := c.Store(ctx)
		require.NoError(t, err)
		require.Equal(t, int32(2), atomic.LoadInt32(&p.calls))
		require.Same(t, first, second)
		require.Equal(t, 1, c.decodeCache.Len())
	})

	t.Run("no_caches", func(t *testing.T) {
		p := newSampleProvider()
		c, err := NewCollector(p, OptionTTL(0), OptionDecodeCacheSize(0))
		require.NoError(t, err)
		defer c.Close()

		first, err := c.Store(ctx)
		require.NoError(t, err)
		second, err := c.Store(ctx)
		require.NoError(t, err)
		require.NotSame(t, first, second)
		require.Equal(t, first.Len(), second.Len())
	})

	t.Run("concurrent", func(t *testing.T) {
		p := newSampleProvider()
		c, err := NewCollector(p, OptionTTL(0))
		require.NoError(t, err)
		defer c.Close()

		var wg sync.WaitGroup
		fingerprints := make([]Fingerprint, 16)
		for i := range fingerprints {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				fp, err := c.Fingerprint(ctx)
				require.NoError(t, err)
				fingerprints[i] = fp
			}(i)
		}
		wg.Wait()
		for _, fp := range fingerprints {
			require.Equal(t, fingerprints[0], fp)
		}
		require.Equal(t, 1, c.decodeCache.Len())
		require.Zero(t, c.decodeLocks.Len())
	})

	t.Run("provider_error", func(t *testing.T) {
		p := &countingProvider{err: firmwaretable.ErrAccessDenied{Source: "unit-test", Err: errors.New("unit-test")}}
		c, err := NewCollector(p)
		require.NoError(t, err)
		defer c.Close()

		_, err = c.All(ctx)
		require.ErrorAs(t, err, &firmwaretable.ErrAccessDenied{})
	})

	t.Run("decode_error_is_not_cached", func(t *testing.T) {
		p := newSampleProvider()
		p.entryPoint = append([]byte{}, p.entryPoint...)
		p.entryPoint[0x05]++
		c, err := NewCollector(p)
		require.NoError(t, err)
		defer c.Close()

		_, err = c.Store(ctx)
		require.Error(t, err)
		_, err = c.Store(ctx)
		require.Error(t, err)
		require.Equal(t, int32(2), atomic.LoadInt32(&p.calls))
		require.Zero(t, c.decodeCache.Len())
	})

	t.Run("cpuid_fallback", func(t *testing.T) {
		b := smbiostest.NewTableBuilder().EndOfTable(0)
		p := &countingProvider{entryPoint: b.EntryPoint3(3, 0), table: b.Bytes()}
		c, err := NewCollector(p, OptionCPUIDFallback(true))
		require.NoError(t, err)
		defer c.Close()

		info, err := c.Processor(ctx)
		require.NoError(t, err)
		expected := ProcessorInfo{}
		fillFromCPUID(&expected, cpuid.CPU)
		require.Equal(t, expected, info)

		all, err := c.All(ctx)
		require.NoError(t, err)
		require.Equal(t, expected, all.Processor)
	})
}
