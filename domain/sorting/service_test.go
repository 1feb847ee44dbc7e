package sorting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func awaitResult(t *testing.T, svc *Service) Result {
	t.Helper()
	select {
	case res := <-svc.Results():
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for sort result")
		return Result{}
	}
}

func TestServiceDeliversResult(t *testing.T) {
	svc := NewService(nil, NewSorter())
	svc.Start()
	defer svc.Stop()

	src := noiseRaster(t, 16, 16, 3)
	id := svc.Submit(src, Horizontal, Params{Threshold: 40})

	res := awaitResult(t, svc)
	require.Equal(t, id, res.Job.ID)
	require.Equal(t, Horizontal, res.Job.Algorithm)
	require.NotNil(t, res.Output)
	require.Equal(t, src.W, res.Output.W)
	require.Equal(t, src.H, res.Output.H)
	require.Equal(t, pixelMultiset(src), pixelMultiset(res.Output))
}

func TestServiceNewestSubmissionSupersedesQueued(t *testing.T) {
	svc := NewService(nil, NewSorter())
	src := noiseRaster(t, 16, 16, 4)

	// Queue two jobs before starting the worker: only the newest may run.
	svc.Submit(src, Horizontal, Params{Threshold: 10})
	id := svc.Submit(src, Vertical, Params{Threshold: 20})
	svc.Start()
	defer svc.Stop()

	res := awaitResult(t, svc)
	require.Equal(t, id, res.Job.ID)
	require.Equal(t, Vertical, res.Job.Algorithm)

	stats := svc.Stats()
	require.Equal(t, uint64(1), stats.Completed)
	require.Equal(t, uint64(1), stats.Discarded)
}

func TestServiceAppliesTintOnlyWhenEnabled(t *testing.T) {
	svc := NewService(nil, NewSorter())
	svc.Start()
	defer svc.Stop()

	src := noiseRaster(t, 8, 8, 7)
	p := Params{Threshold: 40, ColorTint: 120}

	svc.Submit(src, Horizontal, p)
	plain := awaitResult(t, svc)
	require.NotNil(t, plain.Output)

	p.TintEnabled = true
	svc.Submit(src, Horizontal, p)
	tinted := awaitResult(t, svc)
	require.NotNil(t, tinted.Output)

	require.NotEqual(t, plain.Output.Pix, tinted.Output.Pix)

	// The flag is part of the cache identity so toggling it can never
	// serve a stale preview.
	require.NotEqual(t,
		Key(1, Horizontal, plain.Job.Params),
		Key(1, Horizontal, tinted.Job.Params))
}

func TestServiceStartStopIdempotent(t *testing.T) {
	svc := NewService(nil, nil)
	svc.Start()
	svc.Start()
	require.True(t, svc.Running())
	svc.Stop()
	svc.Stop()
	require.False(t, svc.Running())
}

func TestPreviewCacheRoundTrip(t *testing.T) {
	c, err := NewPreviewCache(2)
	require.NoError(t, err)

	p := Params{Threshold: 50, HueShift: 90}
	k := Key(1, Horizontal, p)
	_, ok := c.Get(k)
	require.False(t, ok)

	r := noiseRaster(t, 4, 4, 5)
	c.Add(k, r)
	got, ok := c.Get(k)
	require.True(t, ok)
	require.Same(t, r, got)

	// A different source generation or parameter set misses.
	_, ok = c.Get(Key(2, Horizontal, p))
	require.False(t, ok)
	_, ok = c.Get(Key(1, Vertical, p))
	require.False(t, ok)

	c.Purge()
	_, ok = c.Get(k)
	require.False(t, ok)
}
