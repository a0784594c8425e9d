package pricing

import "sync"

// StackThreshold is the largest path count served from the fixed-capacity arena
// (8192 float64 values, 64KiB per buffer).
const StackThreshold = 8192

type BufferKind int

const (
	// BufferStack is a pooled fixed-capacity arena, the stand-in for a
	// stack-scoped buffer.
	BufferStack BufferKind = iota
	BufferHeap
)

func (k BufferKind) String() string {
	if k == BufferHeap {
		return "heap"
	}
	return "stack"
}

// ChooseBuffer picks the buffer kind for a path count. The choice never
// changes computed values.
func ChooseBuffer(paths int) BufferKind {
	if paths <= StackThreshold {
		return BufferStack
	}
	return BufferHeap
}

type arena struct {
	samples [StackThreshold]float64
	payoffs [StackThreshold]float64
}

var arenaPool = sync.Pool{
	New: func() interface{} {
		return new(arena)
	},
}

// scratch is owned by one simulation call and released when it returns.
type scratch struct {
	Kind    BufferKind
	Samples []float64
	Payoffs []float64
	arena   *arena
}

func acquire(paths int) scratch {
	if ChooseBuffer(paths) == BufferStack {
		a := arenaPool.Get().(*arena)
		return scratch{
			Kind:    BufferStack,
			Samples: a.samples[:paths],
			Payoffs: a.payoffs[:paths],
			arena:   a,
		}
	}
	return scratch{
		Kind:    BufferHeap,
		Samples: make([]float64, paths),
		Payoffs: make([]float64, paths),
	}
}

func (s *scratch) release() {
	if s.arena != nil {
		arenaPool.Put(s.arena)
		s.arena = nil
	}
	s.Samples, s.Payoffs = nil, nil
}
