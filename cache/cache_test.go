package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/matryer/is"

	"github.com/wordsmithgame/wordsmith/config"
)

func TestCacheLoadsOnce(t *testing.T) {
	is := is.New(t)
	loads := 0
	c := New(config.DefaultConfig(), func(cfg *config.Config, key string) (string, error) {
		loads++
		return "lexicon:" + key, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			obj, err := c.Get("NWL20")
			is.NoErr(err)
			is.Equal(obj, "lexicon:NWL20")
		}()
	}
	wg.Wait()
	is.Equal(loads, 1)
	is.Equal(c.Len(), 1)

	c.Evict("NWL20")
	_, err := c.Get("NWL20")
	is.NoErr(err)
	is.Equal(loads, 2)
}

func TestCacheError(t *testing.T) {
	is := is.New(t)
	errNope := errors.New("nope")
	c := New(config.DefaultConfig(), func(cfg *config.Config, key string) (int, error) {
		return 0, errNope
	})
	_, err := c.Get("x")
	is.True(errors.Is(err, errNope))
	is.Equal(c.Len(), 0)
}
