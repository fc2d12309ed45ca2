package refdata

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/marketlens/bhavview/internal/nse"
)

// Fetcher is the slice of the NSE client the cache needs.
type Fetcher interface {
	FetchIndexConstituents(index string) ([]string, error)
	FetchEquityList() (map[string]string, error)
}

// entry caches one reference dataset. Exactly one of members/names is set
// depending on the key. Entries are replaced whole and never mutated, so
// returned maps are safe to read without the lock.
type entry struct {
	members   map[string]bool
	names     map[string]string
	fetchedAt time.Time
}

// Cache holds the slow-moving NSE reference data (index constituents and the
// equity name master) for the TTL. Fetch failures are swallowed: callers get
// an empty set, which means "unavailable", and the failure is cached for the
// TTL like any other result. An optional Redis level lets restarts skip the
// first fetch; every Redis error is a logged warning at most.
type Cache struct {
	fetcher Fetcher
	redis   *redis.Client
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

func NewCache(fetcher Fetcher, ttl time.Duration, rdb *redis.Client) *Cache {
	return &Cache{
		fetcher: fetcher,
		redis:   rdb,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// IndexMembers returns the constituent set for an index name. An empty set
// means the list is unavailable right now; callers skip index filtering
// rather than matching nothing.
func (c *Cache) IndexMembers(index string) map[string]bool {
	e := c.getOrRefresh("index:"+index, func() *entry {
		members := make(map[string]bool)
		symbols, err := c.fetcher.FetchIndexConstituents(index)
		if err != nil {
			log.Printf("Warning: failed to fetch %s constituents: %v", index, err)
		}
		for _, s := range symbols {
			members[s] = true
		}
		if len(symbols) > 0 {
			c.redisSet("index:"+index, symbols)
		}
		return &entry{members: members}
	})
	return e.members
}

// SymbolNames returns the symbol to company-name map from the equity master.
// Misses are normal; an empty map means the master is unavailable.
func (c *Cache) SymbolNames() map[string]string {
	e := c.getOrRefresh("names", func() *entry {
		names, err := c.fetcher.FetchEquityList()
		if err != nil {
			log.Printf("Warning: failed to fetch equity list: %v", err)
			names = map[string]string{}
		}
		if len(names) > 0 {
			c.redisSet("names", names)
		}
		return &entry{names: names}
	})
	return e.names
}

// Warm fetches every reference dataset once so the first query of the day
// does not pay for them.
func (c *Cache) Warm() {
	for _, index := range nse.IndexNames() {
		c.IndexMembers(index)
	}
	c.SymbolNames()
}

// getOrRefresh returns the fresh entry for key, fetching a replacement when
// the cached one is missing or older than the TTL. The fetch runs outside
// the lock; two goroutines racing on an expired key both fetch and the last
// store wins, which is harmless for data this static.
func (c *Cache) getOrRefresh(key string, fetch func() *entry) *entry {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < c.ttl {
		c.mu.Unlock()
		return e
	}
	c.mu.Unlock()

	e := c.redisGet(key)
	if e == nil {
		e = fetch()
	}
	e.fetchedAt = c.now()

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return e
}

// redisGet loads a previously mirrored dataset. Any failure, including an
// absent server, just means a network fetch.
func (c *Cache) redisGet(key string) *entry {
	if c.redis == nil {
		return nil
	}
	data, err := c.redis.Get(context.Background(), "refdata:"+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Warning: redis get %s: %v", key, err)
		}
		return nil
	}
	if key == "names" {
		names := map[string]string{}
		if err := json.Unmarshal(data, &names); err != nil || len(names) == 0 {
			return nil
		}
		return &entry{names: names}
	}
	var symbols []string
	if err := json.Unmarshal(data, &symbols); err != nil || len(symbols) == 0 {
		return nil
	}
	members := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		members[s] = true
	}
	return &entry{members: members}
}

// redisSet mirrors a successful fetch. Only non-empty results go to Redis so
// a restart retries a failed source immediately instead of inheriting the
// swallowed failure.
func (c *Cache) redisSet(key string, value interface{}) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.redis.Set(context.Background(), "refdata:"+key, data, c.ttl).Err(); err != nil {
		log.Printf("Warning: redis set %s: %v", key, err)
	}
}
