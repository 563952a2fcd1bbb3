package services

import (
	"context"
	"log"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
	"github.com/wadjakorntonsri/linkpulse/pkg/ports"
)

// TwitchUsernames returns the lowercased, de-duplicated Twitch channels
// linked from the enabled links of p, sorted.
func TwitchUsernames(p *domain.Profile) []string {
	if p == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, l := range p.EnabledLinks() {
		if platform, ok := domain.DetectPlatform(l.URL); !ok || platform != domain.PlatformTwitch {
			continue
		}
		if name, ok := domain.ExtractTwitchUsername(l.URL); ok {
			seen[strings.ToLower(name)] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// BackendLiveStatus reads the live flags the backend attached to each link.
type BackendLiveStatus struct{}

func (BackendLiveStatus) LiveFor(_ context.Context, p *domain.Profile) map[string]bool {
	status := make(map[string]bool)
	if p == nil {
		return status
	}
	for _, l := range p.Links {
		if l.TwStatus == nil {
			continue
		}
		if platform, ok := domain.DetectPlatform(l.URL); !ok || platform != domain.PlatformTwitch {
			continue
		}
		if name, ok := domain.ExtractTwitchUsername(l.URL); ok {
			name = strings.ToLower(name)
			status[name] = status[name] || *l.TwStatus
		}
	}
	return status
}

// LiveStatusPoller keeps a snapshot of live flags for one set of usernames,
// refreshed on a fixed interval.
type LiveStatusPoller struct {
	provider ports.LiveStatusProvider
	interval time.Duration

	snapshot   atomic.Pointer[map[string]bool]
	generation atomic.Uint64
	lastUsed   atomic.Int64

	mu        sync.Mutex
	usernames []string
	cancel    context.CancelFunc
	ready     chan struct{}
	wg        sync.WaitGroup
}

func NewLiveStatusPoller(provider ports.LiveStatusProvider, interval time.Duration) *LiveStatusPoller {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	p := &LiveStatusPoller{
		provider: provider,
		interval: interval,
		ready:    make(chan struct{}),
	}
	empty := map[string]bool{}
	p.snapshot.Store(&empty)
	p.lastUsed.Store(time.Now().UnixNano())
	return p
}

// Watch switches the poller to a new username set. A changed set stops the
// previous timer and polls right away; an unchanged set is a no-op.
// It reports whether a new poll was started.
func (p *LiveStatusPoller) Watch(usernames []string) bool {
	names := normalizeUsernames(usernames)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil && slices.Equal(names, p.usernames) {
		return false
	}
	if p.cancel != nil {
		p.cancel()
	}

	gen := p.generation.Add(1)
	p.usernames = names
	ready := make(chan struct{})
	p.ready = ready

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	p.wg.Add(1)
	go p.run(ctx, gen, names, ready)
	return true
}

func (p *LiveStatusPoller) run(ctx context.Context, gen uint64, names []string, ready chan struct{}) {
	defer p.wg.Done()

	p.poll(ctx, gen, names)
	close(ready)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx, gen, names)
		}
	}
}

func (p *LiveStatusPoller) poll(ctx context.Context, gen uint64, names []string) {
	if len(names) == 0 {
		p.store(gen, map[string]bool{})
		return
	}

	status, err := p.provider.LiveStatus(ctx, names)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("Live status poll failed for %v: %v", names, err)
		}
		return
	}

	next := make(map[string]bool, len(names))
	for _, n := range names {
		next[n] = status[n]
	}
	p.store(gen, next)
}

// store swaps in a new snapshot unless a newer Watch superseded gen.
func (p *LiveStatusPoller) store(gen uint64, next map[string]bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation.Load() != gen {
		return
	}
	p.snapshot.Store(&next)
}

// Snapshot returns a copy of the latest live flags.
func (p *LiveStatusPoller) Snapshot() map[string]bool {
	p.lastUsed.Store(time.Now().UnixNano())
	return maps.Clone(*p.snapshot.Load())
}

// WaitReady blocks until the first poll of the current set finished or ctx is done.
func (p *LiveStatusPoller) WaitReady(ctx context.Context) {
	p.mu.Lock()
	ready := p.ready
	p.mu.Unlock()

	select {
	case <-ready:
	case <-ctx.Done():
	}
}

func (p *LiveStatusPoller) idleSince() time.Time {
	return time.Unix(0, p.lastUsed.Load())
}

// Close stops polling and waits for the poll goroutine to exit.
func (p *LiveStatusPoller) Close() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.generation.Add(1)
	p.mu.Unlock()
	p.wg.Wait()
}

func normalizeUsernames(usernames []string) []string {
	seen := make(map[string]struct{}, len(usernames))
	for _, u := range usernames {
		if u = strings.ToLower(strings.TrimSpace(u)); u != "" {
			seen[u] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// LiveStatusHub keeps one poller per subscription. A profile page subscribes
// under its username, so editing its Twitch links retargets the same poller;
// explicit username lists subscribe under the set itself. Pollers nobody
// asked about for a while are dropped.
type LiveStatusHub struct {
	provider  ports.LiveStatusProvider
	interval  time.Duration
	idleAfter time.Duration
	firstWait time.Duration

	mu      sync.Mutex
	pollers map[string]*LiveStatusPoller

	stop chan struct{}
	done chan struct{}
}

type HubOption func(*LiveStatusHub)

// WithIdleTimeout sets how long an unused poller survives.
func WithIdleTimeout(d time.Duration) HubOption {
	return func(h *LiveStatusHub) { h.idleAfter = d }
}

// WithFirstPollWait bounds how long a request waits for a new poller's first result.
func WithFirstPollWait(d time.Duration) HubOption {
	return func(h *LiveStatusHub) { h.firstWait = d }
}

func NewLiveStatusHub(provider ports.LiveStatusProvider, interval time.Duration, opts ...HubOption) *LiveStatusHub {
	h := &LiveStatusHub{
		provider:  provider,
		interval:  interval,
		idleAfter: 10 * time.Minute,
		firstWait: 2 * time.Second,
		pollers:   make(map[string]*LiveStatusPoller),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	go h.evictLoop()
	return h
}

// LiveFor returns the live flags of the Twitch channels linked from p.
func (h *LiveStatusHub) LiveFor(ctx context.Context, p *domain.Profile) map[string]bool {
	if p == nil {
		return map[string]bool{}
	}
	return h.subscribe(ctx, "profile:"+strings.ToLower(p.Username), TwitchUsernames(p))
}

func (h *LiveStatusHub) LiveForUsers(ctx context.Context, usernames []string) map[string]bool {
	names := normalizeUsernames(usernames)
	return h.subscribe(ctx, "users:"+strings.Join(names, ","), names)
}

func (h *LiveStatusHub) subscribe(ctx context.Context, key string, usernames []string) map[string]bool {
	names := normalizeUsernames(usernames)
	if len(names) == 0 {
		h.drop(key)
		return map[string]bool{}
	}

	h.mu.Lock()
	poller, ok := h.pollers[key]
	if !ok {
		poller = NewLiveStatusPoller(h.provider, h.interval)
		h.pollers[key] = poller
	}
	started := poller.Watch(names)
	h.mu.Unlock()

	if started && h.firstWait > 0 {
		waitCtx, cancel := context.WithTimeout(ctx, h.firstWait)
		poller.WaitReady(waitCtx)
		cancel()
	}
	return poller.Snapshot()
}

func (h *LiveStatusHub) drop(key string) {
	h.mu.Lock()
	poller, ok := h.pollers[key]
	delete(h.pollers, key)
	h.mu.Unlock()

	if ok {
		poller.Close()
	}
}

func (h *LiveStatusHub) evictLoop() {
	defer close(h.done)

	ticker := time.NewTicker(max(h.idleAfter/2, 10*time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			h.evictIdle(now)
		}
	}
}

func (h *LiveStatusHub) evictIdle(now time.Time) {
	h.mu.Lock()
	var idle []*LiveStatusPoller
	for key, p := range h.pollers {
		if now.Sub(p.idleSince()) > h.idleAfter {
			idle = append(idle, p)
			delete(h.pollers, key)
		}
	}
	h.mu.Unlock()

	for _, p := range idle {
		p.Close()
	}
}

// Close stops every poller.
func (h *LiveStatusHub) Close() {
	close(h.stop)
	<-h.done

	h.mu.Lock()
	pollers := h.pollers
	h.pollers = make(map[string]*LiveStatusPoller)
	h.mu.Unlock()

	for _, p := range pollers {
		p.Close()
	}
}

var (
	_ ports.LiveStatusSource = BackendLiveStatus{}
	_ ports.LiveStatusSource = (*LiveStatusHub)(nil)
)
