package refresher

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	bCtx "github.com/movebid/goapi/base/ctx"
	"github.com/movebid/goapi/service/cache"
	"github.com/movebid/goapi/service/cache/provider/primitive"
	"github.com/movebid/goapi/service/notify"
)

func newSnapshotCache() cache.Service {
	return cache.New(cache.ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "refresher_test",
		Cache: primitive.NewPrimitive("refresher_test", 8),
	})
}

func Test_RefreshNow_ReplacesSnapshot(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	r := New(&Cfg{Interval: time.Hour, Cache: newSnapshotCache()})

	vals := []string{"first", "second"}
	var i int
	r.Register("actives", func(c bCtx.Ctx) (interface{}, error) {
		v := []string{vals[i]}
		i++
		return &v, nil
	})

	r.RefreshNow(ctx, "actives")
	var got []string
	req.NoError(r.Snapshot(ctx, "actives", &got))
	req.Equal([]string{"first"}, got)

	r.RefreshNow(ctx, "actives")
	req.NoError(r.Snapshot(ctx, "actives", &got))
	req.Equal([]string{"second"}, got)
}

func Test_RefreshNow_FailureKeepsPreviousAndNotifies(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	notifier, err := notify.New(&notify.Cfg{})
	req.NoError(err)
	r := New(&Cfg{Interval: time.Hour, Cache: newSnapshotCache(), Notifier: notifier})

	var fail bool
	r.Register("actives", func(c bCtx.Ctx) (interface{}, error) {
		if fail {
			return nil, errors.New("node unreachable")
		}
		v := []string{"ok"}
		return &v, nil
	})

	r.RefreshNow(ctx, "actives")
	fail = true
	r.RefreshNow(ctx, "actives")

	var got []string
	req.NoError(r.Snapshot(ctx, "actives", &got))
	req.Equal([]string{"ok"}, got)

	recent := notifier.Recent(ctx, 10)
	req.Len(recent, 1)
	req.Equal(notify.LevelDestructive, recent[0].Level)
}

// A slow cycle that resolves after a later cycle has applied must not
// overwrite the fresher snapshot.
func Test_OverlappingCycles_StaleResultDropped(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	r := New(&Cfg{Interval: time.Hour, Cache: newSnapshotCache(), Workers: 2})

	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	r.Register("actives", func(c bCtx.Ctx) (interface{}, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			// cycle 1 stalls until cycle 2 has applied
			<-release
			v := []string{"stale"}
			return &v, nil
		}
		v := []string{"fresh"}
		return &v, nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.RefreshNow(ctx, "actives")
	}()
	// wait until cycle 1 is in flight
	for {
		mu.Lock()
		started := calls >= 1
		mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	r.RefreshNow(ctx, "actives")
	close(release)
	wg.Wait()

	var got []string
	req.NoError(r.Snapshot(ctx, "actives", &got))
	req.Equal([]string{"fresh"}, got)
}

func Test_StartStop_NoOrphanedLoops(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	r := New(&Cfg{Interval: 10 * time.Millisecond, Cache: newSnapshotCache()})

	var mu sync.Mutex
	var calls int
	r.Register("actives", func(c bCtx.Ctx) (interface{}, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		v := []string{"x"}
		return &v, nil
	})

	r.Start(ctx)
	time.Sleep(35 * time.Millisecond)
	r.Stop()

	mu.Lock()
	after := calls
	mu.Unlock()
	req.GreaterOrEqual(after, 2)

	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	final := calls
	mu.Unlock()
	req.Equal(after, final)
}
