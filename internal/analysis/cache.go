package analysis

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/san-kum/slabwave/internal/guide"
)

type cacheKey struct {
	spec    guide.Spec
	theory  guide.Theory
	floor   float64
	samples int
	tol     float64
	maxIter int
	edgeEps float64
}

// Cache memoizes analyses by spec, theory and solver settings. It is safe
// for concurrent use. Returned results are copies; callers may modify them.
type Cache struct {
	opts    Options
	entries *lru.Cache[cacheKey, *Result]

	hits, misses atomic.Int64
}

func NewCache(size int, opts Options) (*Cache, error) {
	entries, err := lru.New[cacheKey, *Result](size)
	if err != nil {
		return nil, err
	}
	return &Cache{opts: opts, entries: entries}, nil
}

func (c *Cache) Run(spec guide.Spec, theory guide.Theory) (*Result, error) {
	key := cacheKey{
		spec:    spec,
		theory:  theory,
		floor:   c.opts.CutoffFloor,
		samples: c.opts.samples(spec),
		tol:     c.opts.Scan.Tol,
		maxIter: c.opts.Scan.MaxIter,
		edgeEps: c.opts.Scan.EdgeEps,
	}
	if r, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return r.clone(), nil
	}
	c.misses.Add(1)

	r, err := Run(spec, theory, c.opts)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, r)
	return r.clone(), nil
}

func (c *Cache) Analyze(spec guide.Spec, theory guide.Theory) ([]guide.Mode, error) {
	r, err := c.Run(spec, theory)
	if err != nil {
		return nil, err
	}
	return r.Modes, nil
}

// Stats returns the hit and miss counts since creation.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) Len() int {
	return c.entries.Len()
}

func (r *Result) clone() *Result {
	out := *r
	out.Modes = make([]guide.Mode, len(r.Modes))
	for i, m := range r.Modes {
		m.Params = append(guide.Params(nil), m.Params...)
		out.Modes[i] = m
	}
	out.Poles = append(out.Poles[:0:0], r.Poles...)
	out.Skipped = append(out.Skipped[:0:0], r.Skipped...)
	return &out
}
