package anim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fractalab/internal/anim"
)

var _ = Describe("Animator", func() {
	var kfs []anim.Keyframe

	BeforeEach(func() {
		kfs = []anim.Keyframe{
			{Time: 0.0, CReal: 0.0, CImag: 0.0},
			{Time: 0.5, CReal: 1.0, CImag: -1.0},
			{Time: 1.0, CReal: 2.0, CImag: 0.0},
		}
	})

	Describe("interpolation", func() {
		It("hits the keyframes exactly at their times", func() {
			a := anim.NewAnimator(kfs, 10)

			cr, ci := a.At(0)
			Expect(cr).To(Equal(0.0))
			Expect(ci).To(Equal(0.0))

			cr, ci = a.At(0.5)
			Expect(cr).To(Equal(1.0))
			Expect(ci).To(Equal(-1.0))

			cr, ci = a.At(1)
			Expect(cr).To(Equal(2.0))
			Expect(ci).To(Equal(0.0))
		})

		It("smoothsteps between bracketing keyframes", func() {
			a := anim.NewAnimator(kfs, 10)

			// Midway through a segment smoothstep equals 0.5, so the
			// constant is the segment midpoint.
			cr, ci := a.At(0.25)
			Expect(cr).To(BeNumerically("~", 0.5, 1e-12))
			Expect(ci).To(BeNumerically("~", -0.5, 1e-12))
		})

		It("eases in and out of each segment", func() {
			a := anim.NewAnimator(kfs, 10)

			// Near a segment start the smoothstep slope is small: the value
			// moves less than linear interpolation would.
			cr, _ := a.At(0.05)
			Expect(cr).To(BeNumerically("<", 0.1))
			Expect(cr).To(BeNumerically(">", 0))
		})

		It("sorts keyframes given out of order", func() {
			reversed := []anim.Keyframe{kfs[2], kfs[0], kfs[1]}
			a := anim.NewAnimator(reversed, 10)

			cr, _ := a.At(0)
			Expect(cr).To(Equal(0.0))
			cr, _ = a.At(1)
			Expect(cr).To(Equal(2.0))
		})

		It("falls back to boundary keyframes outside the timeline", func() {
			partial := []anim.Keyframe{
				{Time: 0.2, CReal: -1.0, CImag: 0.5},
				{Time: 0.8, CReal: 1.0, CImag: -0.5},
			}
			a := anim.NewAnimator(partial, 10)

			cr, ci := a.At(0)
			Expect(cr).To(Equal(-1.0))
			Expect(ci).To(Equal(0.5))

			cr, ci = a.At(1)
			Expect(cr).To(Equal(1.0))
			Expect(ci).To(Equal(-0.5))
		})
	})

	Describe("degenerate keyframe lists", func() {
		It("pins a single keyframe everywhere", func() {
			a := anim.NewAnimator([]anim.Keyframe{{Time: 0.5, CReal: 0.3, CImag: 0.4}}, 10)

			for _, p := range []float64{0, 0.25, 0.5, 1} {
				cr, ci := a.At(p)
				Expect(cr).To(Equal(0.3))
				Expect(ci).To(Equal(0.4))
			}
		})

		It("keeps the seeded constant with no keyframes", func() {
			a := anim.NewAnimator(nil, 10)

			cr, ci := a.At(0.5)
			Expect(cr).To(Equal(0.0))
			Expect(ci).To(Equal(0.0))
		})

		It("snaps across zero-length segments", func() {
			dup := []anim.Keyframe{
				{Time: 0.5, CReal: 1.0, CImag: 0.0},
				{Time: 0.5, CReal: 2.0, CImag: 0.0},
			}
			a := anim.NewAnimator(dup, 10)

			// A zero span cannot be interpolated; the segment start wins.
			cr, _ := a.At(0.5)
			Expect(cr).To(Equal(1.0))
		})
	})

	Describe("lifecycle", func() {
		It("seeds the constant from the first keyframe", func() {
			a := anim.NewAnimator(kfs, 10)

			cr, ci := a.Constant()
			Expect(cr).To(Equal(0.0))
			Expect(ci).To(Equal(0.0))
			Expect(a.Active()).To(BeFalse())
		})

		It("does not advance while idle", func() {
			a := anim.NewAnimator(kfs, 10)

			cr, ci, running := a.Tick(1)
			Expect(running).To(BeFalse())
			Expect(cr).To(Equal(0.0))
			Expect(ci).To(Equal(0.0))
		})

		It("advances proportionally to dt while running", func() {
			a := anim.NewAnimator(kfs, 10)
			a.Start()

			_, _, running := a.Tick(2.5)
			Expect(running).To(BeTrue())
			Expect(a.Progress()).To(BeNumerically("~", 0.25, 1e-12))

			cr, _ := a.Constant()
			Expect(cr).To(BeNumerically("~", 0.5, 1e-12))
		})

		It("lands on the final keyframe and goes idle on completion", func() {
			a := anim.NewAnimator(kfs, 10)
			a.Start()

			cr, ci, running := a.Tick(12)
			Expect(running).To(BeFalse())
			Expect(a.Active()).To(BeFalse())
			Expect(cr).To(Equal(2.0))
			Expect(ci).To(Equal(0.0))
		})

		It("restarts from the beginning", func() {
			a := anim.NewAnimator(kfs, 10)
			a.Start()
			a.Tick(12)

			a.Start()
			Expect(a.Active()).To(BeTrue())
			Expect(a.Progress()).To(Equal(0.0))
		})

		It("stops mid-flight and keeps the last constant", func() {
			a := anim.NewAnimator(kfs, 10)
			a.Start()
			a.Tick(2.5)
			a.Stop()

			Expect(a.Active()).To(BeFalse())
			cr, _ := a.Constant()
			Expect(cr).To(BeNumerically("~", 0.5, 1e-12))

			_, _, running := a.Tick(1)
			Expect(running).To(BeFalse())
		})

		It("ignores non-positive durations on SetDuration", func() {
			a := anim.NewAnimator(kfs, 10)
			a.SetDuration(0)
			Expect(a.Duration()).To(Equal(10.0))
			a.SetDuration(-5)
			Expect(a.Duration()).To(Equal(10.0))
			a.SetDuration(20)
			Expect(a.Duration()).To(Equal(20.0))
		})
	})

	Describe("default trajectory", func() {
		It("forms a closed loop", func() {
			defaults := anim.DefaultKeyframes()
			Expect(len(defaults)).To(BeNumerically(">=", 2))

			first := defaults[0]
			last := defaults[len(defaults)-1]
			Expect(first.Time).To(Equal(0.0))
			Expect(last.Time).To(Equal(1.0))
			Expect(first.CReal).To(Equal(last.CReal))
			Expect(first.CImag).To(Equal(last.CImag))
		})
	})
})
