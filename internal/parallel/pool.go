package parallel

import (
	"runtime"
	"sync"
)

// Chunk is a half-open index range [Lo, Hi).
type Chunk struct {
	Lo, Hi int
}

// Len returns Hi - Lo.
func (c Chunk) Len() int { return c.Hi - c.Lo }

// Workers resolves a requested worker count. n <= 0 means runtime.NumCPU().
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Split partitions [0, n) into at most parts contiguous, non-overlapping chunks.
// Chunk sizes differ by at most one. Returns nil when n <= 0.
func Split(n, parts int) []Chunk {
	if n <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	chunks := make([]Chunk, parts)
	base, rem := n/parts, n%parts
	lo := 0
	for i := range chunks {
		size := base
		if i < rem {
			size++
		}
		chunks[i] = Chunk{Lo: lo, Hi: lo + size}
		lo += size
	}
	return chunks
}

// Range runs fn once per chunk of Split(n, Workers(workers)), one goroutine per
// chunk, and returns when every chunk has finished. The return is the join
// point: writes made by fn are visible to the caller afterwards.
func Range(n, workers int, fn func(lo, hi int)) {
	chunks := Split(n, Workers(workers))
	switch len(chunks) {
	case 0:
		return
	case 1:
		fn(chunks[0].Lo, chunks[0].Hi)
		return
	}

	var wg sync.WaitGroup
	for _, c := range chunks {
		wg.Add(1)
		go func(c Chunk) {
			defer wg.Done()
			fn(c.Lo, c.Hi)
		}(c)
	}
	wg.Wait()
}
