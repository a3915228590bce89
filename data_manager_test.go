package vlist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingAdapter struct {
	inner   *SliceAdapter[row]
	gate    chan struct{}
	done    chan struct{} // closed once Read is about to return, for tests to wait on
	reads   int
	mu      sync.Mutex
	failErr error
}

func (a *blockingAdapter) Read(ctx context.Context, req ReadRequest) (Page[row], error) {
	a.mu.Lock()
	a.reads++
	a.mu.Unlock()
	if a.gate != nil {
		<-a.gate
	}
	if a.done != nil {
		defer close(a.done)
	}
	if a.failErr != nil {
		return Page[row]{}, a.failErr
	}
	return a.inner.Read(ctx, req)
}

func TestDataManager_LoadInitialPopulatesItems(t *testing.T) {
	source := makeRows(200)
	adapter := NewSliceAdapter(source)
	dm := NewDataManager[row](adapter, nil, nil)

	dm.LoadInitial(context.Background())
	require.Eventually(t, func() bool { return dm.Len() == InitialLoadSize }, time.Second, time.Millisecond)

	item, ok := dm.Get(0)
	require.True(t, ok)
	assert.Equal(t, 0, item.id)
}

func TestDataManager_GenerationDiscardsStaleResponse(t *testing.T) {
	source := makeRows(200)
	gate := make(chan struct{})
	done := make(chan struct{})
	adapter := &blockingAdapter{inner: NewSliceAdapter(source), gate: gate, done: done}

	// stale responses are silently dropped (no onLoaded call), so
	// completion is observed via the adapter's own done channel, not
	// the manager's callback.
	dm := NewDataManager[row](adapter, nil, nil)

	dm.LoadInitial(context.Background()) // blocks on the gate inside its goroutine

	// SetItems bumps the generation before the in-flight fetch's
	// response arrives; the stale response must not overwrite it.
	dm.SetItems(makeRows(3))
	close(gate)
	<-done

	assert.Equal(t, 3, dm.Len(), "SetItems must win over a stale in-flight response")
}

func TestDataManager_EnsureRangeSkipsAlreadyResident(t *testing.T) {
	source := makeRows(200)
	var calls int
	var mu sync.Mutex
	adapter := &countingAdapter{inner: NewSliceAdapter(source), calls: &calls, mu: &mu}

	dm := NewDataManager[row](adapter, nil, nil)
	dm.EnsureRange(context.Background(), 0, 50, 0, true)
	require.Eventually(t, func() bool { return dm.Len() == 50 }, time.Second, time.Millisecond)

	// asking for an already-resident sub-range should not issue a
	// second fetch.
	dm.EnsureRange(context.Background(), 0, 20, 0, true)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "range already fully resident should not re-fetch")
}

func TestDataManager_HighVelocityDefersToPending(t *testing.T) {
	source := makeRows(200)
	adapter := NewSliceAdapter(source)
	dm := NewDataManager[row](adapter, nil, nil)

	dm.EnsureRange(context.Background(), 0, 50, CancelLoadVelocityThreshold+1, true)
	require.Equal(t, 0, dm.Len(), "a high-velocity EnsureRange must not fetch immediately")

	dm2 := NewDataManager[row](adapter, nil, nil)
	dm2.EnsureRange(context.Background(), 0, 50, CancelLoadVelocityThreshold+1, true)
	dm2.FlushPending(context.Background())
	require.Eventually(t, func() bool { return dm2.Len() == 50 }, time.Second, time.Millisecond)
}

func TestDataManager_PreloadExtendsRangeForward(t *testing.T) {
	source := makeRows(200)
	adapter := NewSliceAdapter(source)
	dm := NewDataManager[row](adapter, nil, nil)

	v := (PreloadVelocityThreshold + CancelLoadVelocityThreshold) / 2
	dm.EnsureRange(context.Background(), 0, 50, v, true)

	want := 50 + PreloadAhead
	require.Eventually(t, func() bool { return dm.Len() == want }, time.Second, time.Millisecond)
}

func TestDataManager_AdapterErrorInvokesOnError(t *testing.T) {
	adapter := &blockingAdapter{failErr: errors.New("boom")}
	var mu sync.Mutex
	var gotCtx DataManagerErrorContext
	var gotErr error
	dm := NewDataManager[row](adapter, func(ctx DataManagerErrorContext, err error) {
		mu.Lock()
		defer mu.Unlock()
		gotCtx, gotErr = ctx, err
	}, nil)

	dm.LoadInitial(context.Background())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return gotErr != nil
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, ErrLoadInitial, gotCtx)
	assert.EqualError(t, gotErr, "boom")
}

func TestDataManager_LoadMoreAppendsPastResidentEnd(t *testing.T) {
	source := makeRows(200)
	adapter := NewSliceAdapter(source)
	dm := NewDataManager[row](adapter, nil, nil)

	dm.LoadInitial(context.Background())
	require.Eventually(t, func() bool { return dm.Len() == InitialLoadSize }, time.Second, time.Millisecond)

	dm.LoadMore(context.Background())
	want := InitialLoadSize * 2
	require.Eventually(t, func() bool { return dm.Len() == want }, time.Second, time.Millisecond)

	item, ok := dm.Get(InitialLoadSize)
	require.True(t, ok)
	assert.Equal(t, InitialLoadSize, item.id)
}

func TestDataManager_SetItemsReportsTotal(t *testing.T) {
	adapter := NewSliceAdapter(makeRows(5))
	dm := NewDataManager[row](adapter, nil, nil)
	dm.SetItems(makeRows(7))
	assert.Equal(t, 7, dm.Total())
}
