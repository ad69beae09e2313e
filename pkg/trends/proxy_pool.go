package trends

import (
	"strings"
	"sync/atomic"
)

// ProxyPool rotates outbound proxy URLs round-robin so consecutive fetch
// attempts leave through different exits.
type ProxyPool struct {
	proxies []string
	current int64
}

// NewProxyPool builds a pool from a comma-separated proxy URL string.
// An empty string yields an empty pool, meaning direct connections.
func NewProxyPool(proxyString string) *ProxyPool {
	raw := strings.Split(proxyString, ",")
	proxies := make([]string, 0, len(raw))
	for _, p := range raw {
		if cleaned := strings.TrimSpace(p); cleaned != "" {
			proxies = append(proxies, cleaned)
		}
	}
	return &ProxyPool{
		proxies: proxies,
		current: -1,
	}
}

// Next returns the next proxy URL, or "" when the pool is empty.
func (p *ProxyPool) Next() string {
	if len(p.proxies) == 0 {
		return ""
	}
	if len(p.proxies) == 1 {
		return p.proxies[0]
	}
	idx := atomic.AddInt64(&p.current, 1)
	if idx < 0 {
		// Counter wrapped; restart the rotation.
		atomic.StoreInt64(&p.current, 0)
		idx = 0
	}
	return p.proxies[idx%int64(len(p.proxies))]
}

// Size returns the number of configured proxies.
func (p *ProxyPool) Size() int {
	return len(p.proxies)
}
