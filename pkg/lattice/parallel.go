package lattice

import (
	"runtime"
	"sync"
)

// GenerateParallel partitions the outermost lattice axis into
// contiguous slabs, samples the slabs on separate goroutines, and
// concatenates the per-slab results. Containment tests are independent
// per candidate and the region is read-only, so no coordination is
// needed; slab order restores the canonical row-major sequence, making
// the result identical to Generate.
//
// workers <= 0 selects runtime.NumCPU.
func (g *Generator) GenerateParallel(workers int) []Particle {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	n0 := g.counts[0]
	if workers > n0 {
		workers = n0
	}
	if workers <= 1 {
		return g.Generate()
	}

	slabs := make([][]Particle, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		// Slab w covers outer indices [lo, hi).
		lo := w * n0 / workers
		hi := (w + 1) * n0 / workers
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			slabs[w] = g.generateSlab(lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()

	var out []Particle
	for _, s := range slabs {
		out = append(out, s...)
	}
	return out
}

// generateSlab samples the index tuples whose outermost index lies in
// [lo, hi), in row-major order.
func (g *Generator) generateSlab(lo, hi int) []Particle {
	var out []Particle
	idx := make([]int, len(g.counts))
	idx[0] = lo
	for idx[0] < hi {
		p := g.position(idx)
		if g.region.Contains(p) {
			out = append(out, Particle{Position: p, Volume: g.volume})
		}
		if !advanceInner(idx, g.counts) {
			idx[0]++
		}
	}
	return out
}

// advanceInner steps the non-outermost axes in row-major order. It
// reports false when the inner axes wrap, meaning the outermost index
// must advance.
func advanceInner(idx, counts []int) bool {
	for i := len(idx) - 1; i >= 1; i-- {
		idx[i]++
		if idx[i] < counts[i] {
			return true
		}
		idx[i] = 0
	}
	return false
}
