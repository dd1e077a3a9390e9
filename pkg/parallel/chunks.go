package parallel

// Range is a half-open interval [Lo, Hi) of work items.
type Range struct {
	Lo, Hi int
}

// Len returns the number of items in the range.
func (r Range) Len() int { return r.Hi - r.Lo }

// inlineThreshold is the item count under which MapRanges skips the pool.
const inlineThreshold = 64

// chunksPerWorker oversubscribes the pool so uneven items still balance.
const chunksPerWorker = 4

// Split divides [0, n) into at most parts contiguous, non-empty ranges of
// near-equal size. The split depends only on n and parts.
func Split(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	out := make([]Range, 0, parts)
	size, rem := n/parts, n%parts
	lo := 0
	for i := 0; i < parts; i++ {
		hi := lo + size
		if i < rem {
			hi++
		}
		out = append(out, Range{Lo: lo, Hi: hi})
		lo = hi
	}
	return out
}

// MapRanges splits [0, n) into ranges, runs fn over each on a worker pool and
// returns the results in range order, so a reduction over the returned slice
// is deterministic for a given worker count. Small inputs run inline on the
// calling goroutine. workers <= 0 selects DefaultWorkers.
func MapRanges[T any](n, workers int, fn func(r Range) T) []T {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if workers == 1 || n < inlineThreshold {
		return []T{fn(Range{Lo: 0, Hi: n})}
	}

	ranges := Split(n, workers*chunksPerWorker)
	results := make([]T, len(ranges))

	pool, err := NewWorkerPool(workers)
	if err != nil {
		// Unreachable for counts derived from GOMAXPROCS; fall back to inline.
		return []T{fn(Range{Lo: 0, Hi: n})}
	}
	for i, r := range ranges {
		pool.Submit(func() {
			results[i] = fn(r)
		})
	}
	pool.Wait()

	return results
}
