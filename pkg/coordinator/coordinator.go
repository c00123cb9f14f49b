// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package coordinator mounts the dashboard: it loads every section in
// parallel, keeps the realtime channel open, refetches invalidated sections
// and routes mutations.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AccelByte/extend-mission-control/pkg/action"
	actionBuiltin "github.com/AccelByte/extend-mission-control/pkg/action/builtin"
	"github.com/AccelByte/extend-mission-control/pkg/cache"
	"github.com/AccelByte/extend-mission-control/pkg/metrics"
	"github.com/AccelByte/extend-mission-control/pkg/realtime"
	"github.com/AccelByte/extend-mission-control/pkg/section"
	"github.com/AccelByte/extend-mission-control/pkg/store"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	// DefaultRefetchRate is the sustained invalidation refetch rate per second.
	DefaultRefetchRate = 2
	// DefaultRefetchBurst allows one refetch of every section at once.
	DefaultRefetchBurst = 9
)

var (
	ErrAlreadyMounted = errors.New("dashboard already mounted")
	ErrNotMounted     = errors.New("dashboard not mounted")
)

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithRealtime attaches the realtime channel started by Mount.
func WithRealtime(ch *realtime.Channel) Option {
	return func(c *Coordinator) {
		c.channel = ch
	}
}

// WithRefetchLimit sets the token bucket throttling invalidation refetches.
func WithRefetchLimit(r rate.Limit, burst int) Option {
	return func(c *Coordinator) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

// Coordinator owns the lifecycle of one mounted dashboard.
type Coordinator struct {
	sections *section.Registry
	fetcher  *section.Fetcher
	cache    *cache.QueryCache
	store    *store.Store
	executor *action.Executor
	channel  *realtime.Channel
	limiter  *rate.Limiter

	mu          sync.RWMutex
	states      map[string]*sectionState
	order       []string
	mounted     bool
	unmounted   bool
	loaded      chan struct{}
	cancel      context.CancelFunc
	unsubscribe func()
	wg          sync.WaitGroup
}

// New creates a coordinator over the enabled sections of registry.
func New(sections *section.Registry, fetcher *section.Fetcher, qc *cache.QueryCache, st *store.Store, executor *action.Executor, opts ...Option) *Coordinator {
	c := &Coordinator{
		sections: sections,
		fetcher:  fetcher,
		cache:    qc,
		store:    st,
		executor: executor,
		limiter:  rate.NewLimiter(DefaultRefetchRate, DefaultRefetchBurst),
		states:   make(map[string]*sectionState),
		loaded:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, s := range sections.GetAllEnabled() {
		c.order = append(c.order, s.ID())
		c.states[s.ID()] = &sectionState{}
	}
	return c
}

// Mount starts the initial fetch of every enabled section, the realtime
// channel and the refetch loop, then returns without waiting for them.
// A coordinator mounts once.
func (c *Coordinator) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted || c.unmounted {
		c.mu.Unlock()
		return ErrAlreadyMounted
	}
	c.mounted = true
	for _, st := range c.states {
		st.loading = true
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.unsubscribe = c.store.Subscribe(func(slice store.Slice, _ *store.State) {
		metrics.StoreUpdatesTotal.WithLabelValues(string(slice)).Inc()
	})
	c.mu.Unlock()

	logrus.Infof("mounting dashboard with %d sections", len(c.order))

	// fetches outlive Unmount; only the loops stop with runCtx
	fetchCtx := context.WithoutCancel(ctx)
	go func() {
		defer close(c.loaded)
		c.fetchAll(fetchCtx, c.sections.GetAllEnabled())
		logrus.Infof("initial dashboard load complete")
	}()

	if c.channel != nil {
		c.channel.Start(runCtx)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.refetchLoop(runCtx, fetchCtx)
	}()

	return nil
}

// Loaded is closed once every section has resolved its first fetch.
func (c *Coordinator) Loaded() <-chan struct{} {
	return c.loaded
}

// WaitLoaded blocks until the initial round resolves or ctx ends.
func (c *Coordinator) WaitLoaded(ctx context.Context) error {
	select {
	case <-c.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unmount stops the realtime channel and the refetch loop. In-flight fetches
// are not cancelled and may still write to the store.
func (c *Coordinator) Unmount() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = false
	c.unmounted = true
	cancel := c.cancel
	unsubscribe := c.unsubscribe
	c.mu.Unlock()

	if c.channel != nil {
		c.channel.Close()
	}
	cancel()
	c.wg.Wait()
	if unsubscribe != nil {
		unsubscribe()
	}
	logrus.Infof("dashboard unmounted")
}

// Status returns the aggregate loading and error flags with per-section detail.
func (c *Coordinator) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := Status{Realtime: RealtimeDisabled}
	if c.channel != nil {
		status.Realtime = c.channel.State().String()
	}
	for _, id := range c.order {
		st := c.states[id]
		status.IsLoading = status.IsLoading || st.loading
		status.HasError = status.HasError || st.hasError()
		status.Sections = append(status.Sections, st.status(id))
	}
	return status
}

// Results returns the last result of every section that has resolved.
func (c *Coordinator) Results() map[string]section.Result {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]section.Result, len(c.states))
	for id, st := range c.states {
		if st.result != nil {
			out[id] = *st.result
		}
	}
	return out
}

// Snapshot returns a copy of the dashboard state.
func (c *Coordinator) Snapshot() *store.State {
	return c.store.Snapshot()
}

// RefetchAll invalidates every section and fetches them again. Sections
// resolve independently.
func (c *Coordinator) RefetchAll(ctx context.Context) map[string]section.Result {
	enabled := c.sections.GetAllEnabled()
	keys := make([]string, 0, len(enabled))
	for _, s := range enabled {
		keys = append(keys, s.CacheKey())
	}
	c.cache.Invalidate(keys...)

	c.fetchAll(ctx, enabled)
	return c.Results()
}

// Refetch fetches one section, bypassing its freshness window.
func (c *Coordinator) Refetch(ctx context.Context, sectionID string) (section.Result, error) {
	s := c.sections.Get(sectionID)
	if s == nil || !s.Config().Enabled {
		return section.Result{}, fmt.Errorf("%w: %s", section.ErrSectionNotFound, sectionID)
	}
	c.cache.Invalidate(s.CacheKey())
	return c.fetchSection(ctx, s), nil
}

// LogHabit records a habit completion for today.
func (c *Coordinator) LogHabit(ctx context.Context, habitID string, completed bool) (*action.ActionResult, error) {
	return c.executor.Execute(ctx, actionBuiltin.LogHabitActionID, action.Request{TargetID: habitID, Completed: completed})
}

// RSVPToEvent answers an event invitation.
func (c *Coordinator) RSVPToEvent(ctx context.Context, eventID, status string) (*action.ActionResult, error) {
	return c.executor.Execute(ctx, actionBuiltin.RSVPEventActionID, action.Request{TargetID: eventID, Status: status})
}

// DismissNudge hides the current coaching nudge until the next fetch.
func (c *Coordinator) DismissNudge() {
	c.store.DismissNudge()
}

func (c *Coordinator) fetchAll(ctx context.Context, sections []section.Section) {
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range sections {
		s := s
		g.Go(func() error {
			c.fetchSection(gctx, s)
			return nil
		})
	}
	_ = g.Wait()
}

func (c *Coordinator) fetchSection(ctx context.Context, s section.Section) section.Result {
	c.mu.Lock()
	st := c.states[s.ID()]
	if st != nil {
		st.inFlight++
	}
	c.mu.Unlock()

	result := c.fetcher.Fetch(ctx, s)

	c.mu.Lock()
	if st != nil {
		st.inFlight--
		st.loading = false
		st.result = &result
	}
	c.mu.Unlock()

	switch result.Source {
	case section.SourceLive:
		logrus.Debugf("section %s loaded in %v", s.ID(), result.Duration)
	case section.SourceFallback:
		logrus.Warnf("section %s using fallback data: %v", s.ID(), result.Err)
	default:
		logrus.Errorf("section %s failed: %v", s.ID(), result.Err)
	}
	return result
}

// refetchLoop refetches the sections whose cache keys were invalidated.
func (c *Coordinator) refetchLoop(runCtx, fetchCtx context.Context) {
	for {
		select {
		case <-runCtx.Done():
			return
		case <-c.cache.Invalidations():
		}

		var batch []section.Section
		for _, key := range c.cache.PendingInvalidations() {
			s := c.sections.GetByCacheKey(key)
			if s == nil || !s.Config().Enabled {
				logrus.Debugf("no section owns invalidated key %s", key)
				continue
			}
			batch = append(batch, s)
		}

		for _, s := range batch {
			if err := c.limiter.Wait(runCtx); err != nil {
				return
			}
			go c.fetchSection(fetchCtx, s)
		}
	}
}
