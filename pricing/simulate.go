package pricing

import (
	"github.com/bcdannyboy/mcgreeks/kernel"
	"github.com/bcdannyboy/mcgreeks/models"
	"github.com/bcdannyboy/mcgreeks/probability"
)

// simulate runs sample -> kernel -> discount -> reduce for one scenario and
// path slice. antithetic requires an even path count; the accumulator then
// counts pair averages.
func simulate(g models.GBM, paths int, antithetic bool, k kernel.Kernel, s *probability.Sampler) (probability.Accumulator, BufferKind) {
	if paths == 0 {
		return probability.Accumulator{}, ChooseBuffer(paths)
	}

	buf := acquire(paths)
	defer buf.release()

	s.Fill(buf.Samples, antithetic)
	return payoffStats(buf, g, antithetic, k), buf.Kind
}

// payoffStats reduces the payoffs of the deviates already in buf.Samples.
// buf.Samples is left untouched.
func payoffStats(buf scratch, g models.GBM, antithetic bool, k kernel.Kernel) probability.Accumulator {
	k.Payoffs(buf.Payoffs, buf.Samples, g)

	payoffs := buf.Payoffs
	if antithetic {
		payoffs = probability.FoldAntithetic(payoffs)
	}

	var acc probability.Accumulator
	acc.AddDiscounted(payoffs, g.Discount)
	return acc
}

// simulateScenarios prices every scenario of set over the same path count.
// Without common random numbers each scenario draws fresh deviates from s;
// with them one buffer of deviates feeds all five.
func simulateScenarios(set models.ScenarioSet, paths int, antithetic, common bool, k kernel.Kernel, s *probability.Sampler) ([models.ScenarioCount]probability.Accumulator, BufferKind) {
	var accs [models.ScenarioCount]probability.Accumulator
	kind := ChooseBuffer(paths)

	if !common {
		for i, p := range set.Scenarios {
			accs[i], kind = simulate(models.NewGBM(p), paths, antithetic, k, s)
		}
		return accs, kind
	}

	if paths == 0 {
		return accs, kind
	}
	buf := acquire(paths)
	defer buf.release()

	s.Fill(buf.Samples, antithetic)
	for i, p := range set.Scenarios {
		accs[i] = payoffStats(buf, models.NewGBM(p), antithetic, k)
	}
	return accs, buf.Kind
}
