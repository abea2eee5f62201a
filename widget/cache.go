package widget

import (
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/playalong-cli/playalong/filesystem"
	"github.com/samber/mo"
)

// cacheData is the on-disk layout of the probe cache.
type cacheData struct {
	Videos map[string]Info `json:"videos"`
}

// probeCache persists probe results through gache. The whole file expires at once.
type probeCache struct {
	internal *gache.Cache[*cacheData]
	mu       sync.RWMutex
}

func newProbeCache(path string, lifetime time.Duration) *probeCache {
	return &probeCache{
		internal: gache.New[*cacheData](&gache.Options{
			Path:       path,
			Lifetime:   lifetime,
			FileSystem: filesystem.CacheFS{},
		}),
	}
}

func (c *probeCache) Get(id string) mo.Option[Info] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[Info]()
	}

	info, ok := data.Videos[id]
	if !ok {
		return mo.None[Info]()
	}
	return mo.Some(info)
}

func (c *probeCache) Set(id string, info Info) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil {
		data = &cacheData{}
	}

	if data.Videos == nil {
		data.Videos = make(map[string]Info)
	}

	data.Videos[id] = info
	return c.internal.Set(data)
}
