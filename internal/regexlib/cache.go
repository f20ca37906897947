package regexlib

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheKey struct {
	pattern    string
	kind       string
	alphabet   string
	priorities string
}

// Cache keeps recently compiled patterns. It is safe for concurrent use.
type Cache struct {
	lru *lru.Cache[cacheKey, *Regex]
}

func NewCache(size int) (*Cache, error) {
	c, err := lru.New[cacheKey, *Regex](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

// Compile returns the cached Regex for pattern and opts, compiling it on a
// miss. Errors are not cached.
func (c *Cache) Compile(pattern string, opts ...Option) (*Regex, error) {
	o := newOptions(opts)
	key := cacheKey{
		pattern:    pattern,
		kind:       o.kind,
		alphabet:   string(o.alphabet),
		priorities: strings.Join(o.priorities, "\x00"),
	}
	if re, ok := c.lru.Get(key); ok {
		metricCacheLookups.WithLabelValues(cacheHit).Inc()
		return re, nil
	}
	metricCacheLookups.WithLabelValues(cacheMiss).Inc()

	re, err := Compile(pattern, opts...)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, re)
	return re, nil
}

func (c *Cache) Len() int { return c.lru.Len() }
