// Package proxy rotates upstream proxies across browser sessions.
package proxy

import (
	"sync"
	"time"
)

// cooldown is how long a failed proxy is skipped before being retried.
const cooldown = 5 * time.Minute

// Pool hands out proxies round-robin, skipping ones that failed recently.
type Pool struct {
	proxies []string
	index   int
	mu      sync.Mutex
	failed  map[string]time.Time
}

// NewPool creates a pool over the given proxy URLs. An empty list yields a
// pool whose Next always returns "".
func NewPool(proxies []string) *Pool {
	return &Pool{
		proxies: proxies,
		failed:  make(map[string]time.Time),
	}
}

// Next returns the next healthy proxy, or "" when the pool is empty. When
// every proxy is cooling down the least-recently-tried one is returned anyway
// so a session can still be attempted.
func (p *Pool) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	start := p.index
	for {
		candidate := p.proxies[p.index]
		p.index = (p.index + 1) % len(p.proxies)

		if failTime, ok := p.failed[candidate]; ok {
			if time.Since(failTime) < cooldown {
				if p.index == start {
					return candidate
				}
				continue
			}
			delete(p.failed, candidate)
		}
		return candidate
	}
}

// MarkFailed puts a proxy into cooldown after a session-level failure.
func (p *Pool) MarkFailed(proxy string) {
	if proxy == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed[proxy] = time.Now()
}

// MarkHealthy clears a proxy's cooldown.
func (p *Pool) MarkHealthy(proxy string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.failed, proxy)
}

// Size returns the number of configured proxies.
func (p *Pool) Size() int {
	return len(p.proxies)
}
