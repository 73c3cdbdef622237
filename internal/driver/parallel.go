package driver

import (
	"sync"

	"github.com/bbw7561135/Stellar-winds/internal/grid"
)

// InjectBlocks runs the injection pass over several blocks concurrently,
// one goroutine per block. Source state is read-only here, so the only
// ordering requirement is that Advance ran first. Hosts that decompose the
// domain into per-worker blocks get the same guarantee. Returns the total
// number of cells overwritten.
func (d *Driver) InjectBlocks(blocks []*grid.Block) int {
	counts := make([]int, len(blocks))

	var wg sync.WaitGroup
	for i, b := range blocks {
		wg.Add(1)
		go func(idx int, blk *grid.Block) {
			defer wg.Done()
			counts[idx] = d.Inject(blk)
		}(i, b)
	}
	wg.Wait()

	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
