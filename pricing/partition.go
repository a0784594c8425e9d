package pricing

// Partition splits total into workers counts that differ by at most one; the
// first total%workers workers take the extra path.
func Partition(total, workers int) []int {
	if workers < 1 {
		workers = 1
	}
	if total < 0 {
		total = 0
	}

	counts := make([]int, workers)
	base, rem := total/workers, total%workers
	for i := range counts {
		counts[i] = base
		if i < rem {
			counts[i]++
		}
	}
	return counts
}

// partitionPaths keeps antithetic slices even by distributing pairs.
func partitionPaths(paths, workers int, antithetic bool) []int {
	if !antithetic {
		return Partition(paths, workers)
	}
	counts := Partition(paths/2, workers)
	for i := range counts {
		counts[i] *= 2
	}
	return counts
}

// effectivePaths rounds odd antithetic counts down to even. A single path
// cannot be paired and is simulated without pairing.
func effectivePaths(paths int, antithetic bool) (int, bool) {
	if !antithetic {
		return paths, false
	}
	if paths < 2 {
		return paths, false
	}
	return paths &^ 1, true
}
