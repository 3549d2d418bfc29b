package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Process-wide timing totals for generation and meshing stages.

type stat struct {
	total time.Duration
	calls int
}

var (
	mu     sync.Mutex
	totals = make(map[string]stat)
)

// Stat is an aggregated timing entry.
type Stat struct {
	Name  string
	Total time.Duration
	Calls int
}

// Mean returns the average duration per call.
func (s Stat) Mean() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("world.Generate")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s := totals[name]
		s.total += d
		s.calls++
		totals[name] = s
		mu.Unlock()
	}
}

// Reset clears all totals. Call before a batch to measure it in isolation.
func Reset() {
	mu.Lock()
	clear(totals)
	mu.Unlock()
}

// Snapshot returns the current totals sorted by descending total time.
func Snapshot() []Stat {
	mu.Lock()
	out := make([]Stat, 0, len(totals))
	for k, v := range totals {
		out = append(out, Stat{Name: k, Total: v.total, Calls: v.calls})
	}
	mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopN formats the n most expensive entries.
// Example: "world.Generate:42.1ms/64, meshing.Extract:12.5ms/64"
func TopN(n int) string {
	ss := Snapshot()
	if n > len(ss) {
		n = len(ss)
	}
	parts := make([]string, 0, n)
	for _, s := range ss[:n] {
		ms := float64(s.Total.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms/%d", s.Name, ms, s.Calls))
	}
	return strings.Join(parts, ", ")
}
