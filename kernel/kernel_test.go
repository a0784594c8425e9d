package kernel

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/bcdannyboy/mcgreeks/models"
	"github.com/bcdannyboy/mcgreeks/probability"
)

func testGBM() models.GBM {
	return models.NewGBM(models.OptionParameters{
		SpotPrice: 100, StrikePrice: 105, TimeToMaturity: 0.75, RiskFreeRate: 0.03, Volatility: 0.35,
	})
}

func TestVectorMatchesScalar(t *testing.T) {
	convey.Convey("Vector kernels are bit-identical to the scalar kernel", t, func() {
		g := testGBM()
		for _, width := range []int{2, 4, 8} {
			k := NewVector(width)
			convey.So(k.Width(), convey.ShouldEqual, width)

			for _, n := range []int{0, 1, 3, 7, 8, 9, 17, 1001} {
				z := make([]float64, n)
				probability.NewSampler(uint64(n)+11).Fill(z, false)

				want := make([]float64, n)
				got := make([]float64, n)
				Scalar().Payoffs(want, z, g)
				k.Payoffs(got, z, g)

				for i := range want {
					convey.So(got[i], convey.ShouldEqual, want[i])
				}
			}
		}
	})

	convey.Convey("Payoffs leaves the deviates untouched", t, func() {
		z := []float64{-1, 0, 1, 2, 3}
		dst := make([]float64, len(z)+3)
		NewVector(4).Payoffs(dst, z, testGBM())
		convey.So(z, convey.ShouldResemble, []float64{-1, 0, 1, 2, 3})
	})
}

func TestSelect(t *testing.T) {
	convey.Convey("Select", t, func() {
		convey.So(Select(Capabilities{}, false).Name(), convey.ShouldEqual, "scalar")
		convey.So(Select(Capabilities{VectorWidth: 1}, false).Width(), convey.ShouldEqual, 1)
		convey.So(Select(Capabilities{VectorWidth: 8}, true).Name(), convey.ShouldEqual, "scalar")
		convey.So(Select(Capabilities{VectorWidth: 4}, false).Name(), convey.ShouldEqual, "vector-x4")
		convey.So(Select(Capabilities{VectorWidth: 8}, false).Width(), convey.ShouldEqual, 8)
	})

	convey.Convey("Unsupported widths fall back to two lanes", t, func() {
		convey.So(NewVector(3).Width(), convey.ShouldEqual, 2)
		convey.So(NewVector(16).Name(), convey.ShouldEqual, "vector-x2")
	})
}

func TestDetect(t *testing.T) {
	convey.Convey("Detect", t, func() {
		c := Detect()
		convey.So(c.LogicalCores, convey.ShouldBeGreaterThan, 0)
		convey.So(c.VectorWidth, convey.ShouldBeIn, []int{0, 2, 4, 8})
		convey.So(Detect().VectorWidth, convey.ShouldEqual, c.VectorWidth)
	})
}
