package queries

import (
	"sync"
	"time"

	"lodgestay/internal/pkg/clock"
)

// ReportCache holds finished occupancy reports for a bounded time.
// It replaces the process-wide timer-refreshed cache of the old system
// with an explicit object: time-to-live expiry plus a forceRefresh path
// at the call site. Safe for concurrent use.
type ReportCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	clock   clock.Clock
}

type cacheEntry struct {
	report    *OccupancyReport
	expiresAt time.Time
}

func NewReportCache(ttl time.Duration, clock clock.Clock) *ReportCache {
	return &ReportCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

func (c *ReportCache) Get(key string) (*OccupancyReport, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.clock.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.report, true
}

func (c *ReportCache) Put(key string, report *OccupancyReport) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// Opportunistic sweep keeps the map from growing with one-off ranges.
	now := c.clock.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}

	c.entries[key] = cacheEntry{
		report:    report,
		expiresAt: now.Add(c.ttl),
	}
}

func (c *ReportCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
