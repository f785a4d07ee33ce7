package swiftcodec

import (
	"sync"

	"github.com/modern-go/concurrent"
)

// Short object keys repeat constantly across sibling objects in typical
// JSON documents (the same field name in every array element, say), so
// this package keeps an optional bounded, deterministically-evicted
// intern cache for them, so long as it never changes observable
// behavior. json-iterator (vendored into grafana-k6) backs its own
// per-type caches with modern-go/concurrent's copy-on-write Map so
// concurrent decodes never block each other on cache reads; this module
// follows the same pattern for key interning.

const (
	internCacheCap  = 512
	internMaxKeyLen = 64
)

type keyCache struct {
	m     *concurrent.Map
	mu    sync.Mutex
	order []string
}

func newKeyCache() *keyCache {
	return &keyCache{m: concurrent.NewMap()}
}

var globalKeyCache = newKeyCache()

// internString returns a canonical string equal to s, reusing a
// previously-seen allocation when one exists in the bounded cache. It
// never changes the decoded value, only which backing array a repeated
// key shares.
func internString(s string) string {
	if len(s) == 0 || len(s) > internMaxKeyLen {
		return s
	}
	if v, ok := globalKeyCache.m.Load(s); ok {
		return v.(string)
	}
	globalKeyCache.mu.Lock()
	defer globalKeyCache.mu.Unlock()
	if v, ok := globalKeyCache.m.Load(s); ok {
		return v.(string)
	}
	if len(globalKeyCache.order) >= internCacheCap {
		oldest := globalKeyCache.order[0]
		globalKeyCache.order = globalKeyCache.order[1:]
		globalKeyCache.m.Delete(oldest)
	}
	globalKeyCache.m.Store(s, s)
	globalKeyCache.order = append(globalKeyCache.order, s)
	return s
}
