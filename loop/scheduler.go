package loop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler is the "next frame" primitive. RequestFrame queues fn to run
// once on the next frame and returns a non-zero handle.
type Scheduler interface {
	RequestFrame(fn func()) int
}

// Sentinel is the process-wide record of the current frame handle. A
// non-zero value means a loop is already running.
type Sentinel interface {
	Load() int
	Store(handle int)
}

// MemorySentinel is a Sentinel held in process memory.
type MemorySentinel struct {
	v atomic.Int64
}

func (s *MemorySentinel) Load() int        { return int(s.v.Load()) }
func (s *MemorySentinel) Store(handle int) { s.v.Store(int64(handle)) }

// ============================================================================
// Manual scheduler
// ============================================================================

// ManualScheduler queues frames until the caller steps them. It is the
// scheduler for tests and stepwise simulation.
type ManualScheduler struct {
	mu    sync.Mutex
	next  int
	queue []func()
}

// RequestFrame queues fn.
func (m *ManualScheduler) RequestFrame(fn func()) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.queue = append(m.queue, fn)
	return m.next
}

// Pending returns the number of queued frames.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Step runs the oldest queued frame. It returns false when nothing is queued.
func (m *ManualScheduler) Step() bool {
	m.mu.Lock()
	if len(m.queue) == 0 {
		m.mu.Unlock()
		return false
	}
	fn := m.queue[0]
	m.queue = m.queue[1:]
	m.mu.Unlock()

	fn()
	return true
}

// Run steps up to n frames and returns how many ran.
func (m *ManualScheduler) Run(n int) int {
	ran := 0
	for ran < n && m.Step() {
		ran++
	}
	return ran
}

// ============================================================================
// Ticker scheduler
// ============================================================================

// TickerScheduler runs queued frames on a fixed interval from a single
// goroutine, standing in for the display's frame callback outside a browser.
type TickerScheduler struct {
	interval time.Duration

	mu      sync.Mutex
	next    int
	pending []func()
}

// NewTickerScheduler creates a scheduler ticking every interval.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	return &TickerScheduler{interval: interval}
}

// RequestFrame queues fn for the next tick.
func (s *TickerScheduler) RequestFrame(fn func()) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.pending = append(s.pending, fn)
	return s.next
}

// Run ticks until ctx is done. Each tick runs the frames queued before it;
// frames they request wait for the following tick.
func (s *TickerScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.mu.Lock()
			batch := s.pending
			s.pending = nil
			s.mu.Unlock()

			for _, fn := range batch {
				fn()
			}
		}
	}
}
