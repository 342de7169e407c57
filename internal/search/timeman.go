package search

import "time"

// Limits is the single configuration surface for a search: how deep and how
// long to search. Run does not read Nodes; a search is never cut off by its
// node count. Populated by the CLI/UCI
// layer; trimmed from the teacher's UCILimits to the single wall-clock
// time_budget contract of spec §4.6.1 — no increments or moves-to-go, since
// the core receives one time budget rather than a UCI `go` command.
type Limits struct {
	MaxDepth   int
	TimeBudget time.Duration // 0 means unlimited (bounded only by MaxDepth)
	Nodes      uint64        // not read by Run
}

// clock tracks a search's wall-clock budget with a monotonic start time, and
// self-calibrates how often the search should poll it: checking every node
// would dominate runtime at shallow depths, so the interval is derived from
// the observed nodes/second rate, targeting roughly one check per second.
type clock struct {
	start      time.Time
	budget     time.Duration
	checkEvery uint64
}

const (
	minCheckInterval = 1 << 10
	maxCheckInterval = 1 << 20
)

func newClock(budget time.Duration) *clock {
	return &clock{start: time.Now(), budget: budget, checkEvery: minCheckInterval}
}

// expired reports whether the budget has been exceeded, polling the
// monotonic clock only every checkEvery nodes and recalibrating that
// interval from the measured rate each time it does.
func (c *clock) expired(nodes uint64) bool {
	if c.budget <= 0 {
		return false
	}
	if nodes%c.checkEvery != 0 {
		return false
	}

	elapsed := time.Since(c.start)
	if elapsed > 0 {
		rate := float64(nodes) / elapsed.Seconds()
		next := uint64(rate)
		if next < minCheckInterval {
			next = minCheckInterval
		}
		if next > maxCheckInterval {
			next = maxCheckInterval
		}
		c.checkEvery = next
	}

	return elapsed >= c.budget
}

func (c *clock) elapsed() time.Duration {
	return time.Since(c.start)
}
