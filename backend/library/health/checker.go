package health

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Probe reports whether one dependency is reachable. It must honour ctx.
type Probe func(ctx context.Context) bool

// Checker runs a fixed set of probes concurrently, each bounded by timeout.
type Checker struct {
	timeout  time.Duration
	probes   map[string]Probe
	probesMu sync.RWMutex
}

func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Checker{
		timeout: timeout,
		probes:  make(map[string]Probe),
	}
}

func (hc *Checker) Timeout() time.Duration {
	return hc.timeout
}

// Register adds or replaces the probe for name.
func (hc *Checker) Register(name string, probe Probe) {
	hc.probesMu.Lock()
	defer hc.probesMu.Unlock()
	hc.probes[name] = probe
}

// Names returns the registered probe names in sorted order.
func (hc *Checker) Names() []string {
	hc.probesMu.RLock()
	defer hc.probesMu.RUnlock()
	names := make([]string, 0, len(hc.probes))
	for name := range hc.probes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check runs every probe and returns name -> reachable. A probe that does not
// return within the timeout counts as unreachable.
func (hc *Checker) Check(ctx context.Context) map[string]bool {
	hc.probesMu.RLock()
	probes := make(map[string]Probe, len(hc.probes))
	for name, probe := range hc.probes {
		probes[name] = probe
	}
	hc.probesMu.RUnlock()

	results := make(map[string]bool, len(probes))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for name, probe := range probes {
		wg.Add(1)
		go func(name string, probe Probe) {
			defer wg.Done()
			ok := hc.run(ctx, probe)
			mu.Lock()
			results[name] = ok
			mu.Unlock()
		}(name, probe)
	}
	wg.Wait()
	return results
}

func (hc *Checker) run(ctx context.Context, probe Probe) bool {
	ctx, cancel := context.WithTimeout(ctx, hc.timeout)
	defer cancel()

	done := make(chan bool, 1)
	go func() {
		done <- probe(ctx)
	}()

	select {
	case ok := <-done:
		return ok
	case <-ctx.Done():
		return false
	}
}
