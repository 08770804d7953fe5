package refresher

import (
	"sync"
	"time"

	"github.com/viney-shih/goroutines"

	"github.com/movebid/goapi/base/backoff"
	bCtx "github.com/movebid/goapi/base/ctx"
	"github.com/movebid/goapi/base/goroutine"
	"github.com/movebid/goapi/base/log"
	"github.com/movebid/goapi/base/metrics"
	"github.com/movebid/goapi/domain/keys"
	"github.com/movebid/goapi/service/cache"
	"github.com/movebid/goapi/service/notify"
)

// FetchFunc produces a full replacement dataset. The returned value must be
// a pointer so it can serialize into the snapshot cache.
type FetchFunc func(c bCtx.Ctx) (interface{}, error)

const defaultInterval = 10 * time.Second

type Cfg struct {
	// Interval between refresh cycles of one dataset
	Interval time.Duration
	Cache    cache.Service
	Notifier notify.Notifier
	// Workers bounds how many datasets refresh concurrently
	Workers int
}

// Refresher keeps named datasets fresh on a fixed interval with an explicit
// start/stop lifecycle. Every cycle fully replaces the snapshot; there is no
// merge. Cycles are issue-stamped: a slow cycle that resolves after a newer
// one has applied is dropped instead of overwriting fresher data with stale.
type Refresher struct {
	interval time.Duration
	cache    cache.Service
	notifier notify.Notifier
	pool     *goroutines.Pool
	met      metrics.Service

	mu       sync.Mutex
	datasets map[string]FetchFunc
	issued   map[string]uint64
	applied  map[string]uint64

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(cfg *Cfg) *Refresher {
	interval := cfg.Interval
	if interval == 0 {
		interval = defaultInterval
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	return &Refresher{
		interval: interval,
		cache:    cfg.Cache,
		notifier: cfg.Notifier,
		pool:     goroutines.NewPool(workers, goroutines.WithTaskQueueLength(16)),
		met:      metrics.New("refresher"),
		datasets: map[string]FetchFunc{},
		issued:   map[string]uint64{},
		applied:  map[string]uint64{},
		stopCh:   make(chan struct{}),
	}
}

// Register binds a dataset name to its fetch func. Must be called before
// Start.
func (r *Refresher) Register(name string, fetch FetchFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.datasets[name] = fetch
}

// Start launches one refresh loop per registered dataset.
func (r *Refresher) Start(ctx bCtx.Ctx) {
	r.mu.Lock()
	names := make([]string, 0, len(r.datasets))
	for name := range r.datasets {
		names = append(names, name)
	}
	r.mu.Unlock()

	for _, name := range names {
		name := name
		r.wg.Add(1)
		goroutine.RecoverableGo(func() {
			defer r.wg.Done()
			r.loop(ctx, name)
		})
	}
}

// Stop terminates every refresh loop and waits for them to drain. No timer
// outlives the refresher.
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
	r.wg.Wait()
	r.pool.Release()
}

func (r *Refresher) loop(ctx bCtx.Ctx, name string) {
	// derive a ctx cancelled on Stop so the interval sleep wakes up promptly
	loopCtx, cancel := bCtx.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-r.stopCh:
			cancel()
		case <-loopCtx.Done():
		}
	}()

	tick := backoff.NewConstant(r.interval)
	for {
		if loopCtx.Err() != nil {
			return
		}
		r.RefreshNow(loopCtx, name)
		if err := tick.Backoff(loopCtx); err != nil {
			return
		}
	}
}

// RefreshNow runs one refresh cycle of the dataset through the worker pool
// and waits for it to finish.
func (r *Refresher) RefreshNow(ctx bCtx.Ctx, name string) {
	r.mu.Lock()
	fetch, ok := r.datasets[name]
	if !ok {
		r.mu.Unlock()
		return
	}
	r.issued[name]++
	seq := r.issued[name]
	r.mu.Unlock()

	done := make(chan struct{})
	err := r.pool.Schedule(func() {
		defer close(done)
		r.refreshOnce(ctx, name, seq, fetch)
	})
	if err != nil {
		ctx.WithFields(log.Fields{"dataset": name, "err": err}).Error("pool.Schedule failed")
		return
	}
	<-done
}

func (r *Refresher) refreshOnce(ctx bCtx.Ctx, name string, seq uint64, fetch FetchFunc) {
	defer r.met.BumpTime("cycle.time", "dataset", name).End()

	val, err := fetch(ctx)
	if err != nil {
		// keep the previous snapshot in place, surface the failure
		r.met.BumpSum("cycle.err", 1, "dataset", name)
		ctx.WithFields(log.Fields{"dataset": name, "err": err}).Error("refresh fetch failed")
		if r.notifier != nil {
			r.notifier.Notify(ctx, notify.LevelDestructive, "Error", "failed to refresh "+name)
		}
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq < r.applied[name] {
		// a newer cycle already applied; drop this stale result
		r.met.BumpSum("cycle.stale", 1, "dataset", name)
		return
	}
	if err := r.cache.Set(ctx, keys.CacheKey(keys.PfxSnapshot, name), val); err != nil {
		ctx.WithFields(log.Fields{"dataset": name, "err": err}).Error("snapshot store failed")
		return
	}
	r.applied[name] = seq
}

// Snapshot loads the latest applied dataset into container. Returns
// cache.ErrNotFound before the first successful cycle.
func (r *Refresher) Snapshot(ctx bCtx.Ctx, name string, container interface{}) error {
	return r.cache.Get(ctx, keys.CacheKey(keys.PfxSnapshot, name), container)
}
