package middleware

import (
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ActivityTracker counts requests in flight. Each request acquires on entry
// and releases on a guaranteed exit path, so one finishing operation can
// never clear the in-flight state of another that is still running.
type ActivityTracker struct {
	inFlight  int64
	startedAt time.Time
}

func NewActivityTracker() *ActivityTracker {
	return &ActivityTracker{startedAt: time.Now()}
}

func (t *ActivityTracker) Acquire() {
	atomic.AddInt64(&t.inFlight, 1)
}

func (t *ActivityTracker) Release() {
	if atomic.AddInt64(&t.inFlight, -1) < 0 {
		// Unbalanced release; clamp rather than go negative.
		atomic.StoreInt64(&t.inFlight, 0)
	}
}

func (t *ActivityTracker) InFlight() int64 {
	return atomic.LoadInt64(&t.inFlight)
}

// Middleware wires the tracker into the request path.
func (t *ActivityTracker) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		t.Acquire()
		defer t.Release()
		return c.Next()
	}
}

// StatusHandler reports the live count and uptime.
func (t *ActivityTracker) StatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"in_flight": t.InFlight(),
			"uptime":    time.Since(t.startedAt).String(),
		})
	}
}
