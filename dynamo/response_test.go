package dynamo_test

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynfilter/dynamo"
	"github.com/san-kum/dynfilter/vector"
)

// stepResponse drives a filter resting at 0 toward a unit step and returns the
// extremes of the trajectory and the final value. The target rate is
// estimated, so the step reaches the filter as a one-frame velocity spike.
func stepResponse(p dynamo.Params, dt float32, steps int) (lo, hi, last float64) {
	filter, err := dynamo.NewFromParams(p, vector.Scalar(0))
	Expect(err).NotTo(HaveOccurred())

	for i := 0; i < steps; i++ {
		v, err := filter.Update(dt, 1, nil)
		Expect(err).NotTo(HaveOccurred())
		last = float64(v)
		lo, hi = math.Min(lo, last), math.Max(hi, last)
	}
	return lo, hi, last
}

var _ = Describe("Filter", func() {
	Describe("step response", func() {
		frequencies := []float32{0.5, 1, 5}
		dampings := []float32{0.3, 1, 2}
		responses := []float32{-2, 0, 2}

		DescribeTable("converges to a held target without diverging",
			func(dt float32) {
				steps := int(math.Ceil(60 / float64(dt)))
				zero := vector.Scalar(0)

				for _, f := range frequencies {
					for _, z := range dampings {
						for _, r := range responses {
							filter := dynamo.MustNew(f, z, r, vector.Scalar(0))

							var v vector.Scalar
							peak := 0.0
							for i := 0; i < steps; i++ {
								v, _ = filter.Update(dt, 1, &zero)
								peak = math.Max(peak, math.Abs(float64(v)))
							}

							desc := fmt.Sprintf("f=%g z=%g r=%g", f, z, r)
							Expect(math.IsNaN(float64(v))).To(BeFalse(), desc)
							Expect(peak).To(BeNumerically("<", 10), desc)
							Expect(float64(v)).To(BeNumerically("~", 1, 1e-3), desc)
						}
					}
				}
			},
			Entry("dt=0.001", float32(0.001)),
			Entry("dt=0.01", float32(0.01)),
			Entry("dt=1/60", float32(1.0/60)),
			Entry("dt=0.1", float32(0.1)),
			Entry("dt=0.5", float32(0.5)),
			Entry("dt=1.0", float32(1.0)),
		)

		DescribeTable("overdamped filters never pass the target",
			func(f, z, dt float32) {
				_, hi, last := stepResponse(dynamo.Params{Frequency: f, Damping: z}, dt, int(20/dt))
				Expect(hi).To(BeNumerically("<=", 1+1e-4))
				Expect(last).To(BeNumerically("~", 1, 1e-3))
			},
			Entry("f=1 z=1.5 dt=0.005", float32(1), float32(1.5), float32(0.005)),
			Entry("f=3 z=1.5 dt=0.02", float32(3), float32(1.5), float32(0.02)),
			Entry("f=3 z=3 dt=0.1", float32(3), float32(3), float32(0.1)),
			Entry("f=1 z=3 dt=0.5", float32(1), float32(3), float32(0.5)),
		)
	})

	Describe("initial response", func() {
		const dt, steps = float32(0.01), 500
		critical := func(r float32) dynamo.Params {
			return dynamo.Params{Frequency: 1, Damping: 1, Response: r}
		}

		It("overshoots the target when positive", func() {
			lo, hi, _ := stepResponse(critical(2), dt, steps)
			Expect(hi).To(BeNumerically(">", 1+1e-3))
			Expect(lo).To(BeNumerically(">=", -1e-3))
		})

		It("first moves away from the target when negative", func() {
			lo, _, _ := stepResponse(critical(-1), dt, steps)
			Expect(lo).To(BeNumerically("<", -1e-3))
		})

		It("neither overshoots nor undershoots when zero", func() {
			lo, hi, last := stepResponse(critical(0), dt, steps)
			Expect(hi).To(BeNumerically("<=", 1+1e-3))
			Expect(lo).To(BeNumerically(">=", -1e-3))
			Expect(last).To(BeNumerically("~", 1, 1e-2))
		})
	})

	Describe("vector values", func() {
		It("smooths each component of an mgl32.Vec3 independently", func() {
			target := mgl32.Vec3{1, -2, 3}
			filter := dynamo.MustNew(2, 0.8, 0.5, mgl32.Vec3{})

			for i := 0; i < 1000; i++ {
				_, err := filter.Update(1.0/60, target, nil)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(filter.Value().ApproxEqualThreshold(target, 1e-3)).To(BeTrue())
		})

		It("tracks a rotation through its rotation vector", func() {
			goal := mgl32.QuatRotate(1.2, mgl32.Vec3{0, 1, 0})
			filter := dynamo.MustNew(1.5, 1, 0, mgl32.Vec3{})

			for i := 0; i < 600; i++ {
				filter.Update(1.0/60, vector.RotationVector(goal), nil)
			}
			Expect(vector.Quat(filter.Value()).ApproxEqualThreshold(goal, 1e-3)).To(BeTrue())
		})
	})
})
