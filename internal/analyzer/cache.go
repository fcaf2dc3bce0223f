package analyzer

import (
	"crypto/sha1"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const defaultCacheTTL = 15 * time.Minute

// VerdictCache memoizes verdicts for identical url/text submissions so that
// resubmitting the same input inside the TTL skips the network round trip.
// Document uploads are never cached.
type VerdictCache struct {
	cache *gocache.Cache
}

// NewVerdictCache creates a cache with the given TTL; zero means the default.
func NewVerdictCache(ttl time.Duration) *VerdictCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &VerdictCache{cache: gocache.New(ttl, 2*ttl)}
}

// Get returns a previously stored verdict for the modality/data pair.
func (vc *VerdictCache) Get(modality Modality, data string) (*Verdict, bool) {
	if vc == nil {
		return nil, false
	}
	if value, found := vc.cache.Get(cacheKey(modality, data)); found {
		verdict := value.(Verdict)
		return &verdict, true
	}
	return nil, false
}

// Put stores a verdict under the modality/data pair using the default TTL.
func (vc *VerdictCache) Put(modality Modality, data string, verdict *Verdict) {
	if vc == nil || verdict == nil {
		return
	}
	vc.cache.SetDefault(cacheKey(modality, data), *verdict)
}

func cacheKey(modality Modality, data string) string {
	sum := sha1.Sum([]byte(string(modality) + "\n" + data))
	return hex.EncodeToString(sum[:])
}
