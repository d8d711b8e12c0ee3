package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/wordsmithgame/wordsmith/config"
)

// The cache is a package used for large objects that we want to load only
// once per process, e.g. compiled lexicons shared by every game the shell or
// the autoplayer runs.

// LoadFunc loads the object for key.
type LoadFunc[T any] func(cfg *config.Config, key string) (T, error)

// Cache is safe for concurrent use. Loads of the same key are serialized, so
// an object is only ever loaded once.
type Cache[T any] struct {
	sync.Mutex
	objects  map[string]T
	cfg      *config.Config
	loadFunc LoadFunc[T]
}

func New[T any](cfg *config.Config, loadFunc LoadFunc[T]) *Cache[T] {
	return &Cache[T]{
		objects:  make(map[string]T),
		cfg:      cfg,
		loadFunc: loadFunc,
	}
}

// Get returns the object for key, loading it if needed.
func (c *Cache[T]) Get(key string) (T, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, err := c.loadFunc(c.cfg, key)
	if err != nil {
		var zero T
		return zero, err
	}
	c.objects[key] = obj
	return obj, nil
}

// Evict drops key, so that the next Get reloads it.
func (c *Cache[T]) Evict(key string) {
	c.Lock()
	defer c.Unlock()
	delete(c.objects, key)
}

// Len is the number of cached objects.
func (c *Cache[T]) Len() int {
	c.Lock()
	defer c.Unlock()
	return len(c.objects)
}
