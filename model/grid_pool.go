package model

import "sync"

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *DenseGrid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles dense grid buffers between reference steps
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &DenseGrid{}
			},
		},
	}
}

// Get retrieves a grid from the pool, resized to b and filled with background
func (p *GridPool) Get(b Bounds, background bool) *DenseGrid {
	g := p.pool.Get().(*DenseGrid)
	g.Reset(b, background)
	return g
}

// Put returns a grid to the pool
func (p *GridPool) Put(g *DenseGrid) {
	p.pool.Put(g)
}
