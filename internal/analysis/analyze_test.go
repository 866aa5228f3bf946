package analysis_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/slabwave/internal/analysis"
	"github.com/san-kum/slabwave/internal/guide"
)

var _ = Describe("Analyze", func() {
	var opts analysis.Options

	BeforeEach(func() {
		opts = quietOptions()
	})

	Context("symmetric slab n1=1.5 n2=1.45 at 1.55um", func() {
		spec := guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 5, Wavelength: 1.55, Polarization: guide.TE}

		It("guides a fundamental mode with an index between the claddings and the core", func() {
			modes, err := analysis.Analyze(spec, guide.Wave, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(modes).NotTo(BeEmpty())
			Expect(modes[0].Index).To(Equal(0))
			Expect(modes[0].Err).NotTo(HaveOccurred())
			Expect(modes[0].EffectiveIndex()).To(And(BeNumerically(">", 1.45), BeNumerically("<", 1.5)))
		})

		It("returns modes in order of decreasing effective index", func() {
			modes, err := analysis.Analyze(spec, guide.Wave, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(modes).To(HaveLen(3))
			for i := 1; i < len(modes); i++ {
				Expect(modes[i].Index).To(Equal(i))
				Expect(modes[i].EffectiveIndex()).To(BeNumerically("<", modes[i-1].EffectiveIndex()))
			}
		})

		It("finds no modes when the core is too thin", func() {
			modes, err := analysis.Analyze(spec.WithThickness(0.1), guide.Wave, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(modes).To(BeEmpty())

			modes, err = analysis.Analyze(spec.WithThickness(0.1), guide.Ray, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(modes).To(BeEmpty())
		})

		It("is deterministic", func() {
			first, err := analysis.Analyze(spec, guide.Ray, opts)
			Expect(err).NotTo(HaveOccurred())
			second, err := analysis.Analyze(spec, guide.Ray, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})
	})

	DescribeTable("ray and wave theory agree",
		func(spec guide.Spec) {
			ray, err := analysis.Analyze(spec, guide.Ray, opts)
			Expect(err).NotTo(HaveOccurred())
			wave, err := analysis.Analyze(spec, guide.Wave, opts)
			Expect(err).NotTo(HaveOccurred())

			Expect(ray).To(HaveLen(len(wave)))
			for i := range ray {
				Expect(ray[i].Err).NotTo(HaveOccurred())
				Expect(wave[i].Err).NotTo(HaveOccurred())
				Expect(ray[i].EffectiveIndex()).To(BeNumerically("~", wave[i].EffectiveIndex(), 1e-8))
			}
		},
		Entry("symmetric TE", guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 5, Wavelength: 1.55, Polarization: guide.TE}),
		Entry("symmetric TM", guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 5, Wavelength: 1.55, Polarization: guide.TM}),
		Entry("high contrast TE", guide.Spec{Core: 1.5, Substrate: 1, Thickness: 1, Wavelength: 1, Polarization: guide.TE}),
		Entry("asymmetric TE", guide.Spec{Core: 2.2, Substrate: 1.45, Cover: 1, Thickness: 1.2, Wavelength: 1.55, Polarization: guide.TE}),
		Entry("asymmetric TM", guide.Spec{Core: 2.2, Substrate: 1.45, Cover: 1, Thickness: 1.2, Wavelength: 1.55, Polarization: guide.TM}),
		Entry("mode near the tan 2U asymptote, d=4.28", guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 4.28, Wavelength: 1.55, Polarization: guide.TE}),
		Entry("mode near the tan 2U asymptote, d=9.98", guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 9.98, Wavelength: 1.55, Polarization: guide.TE}),
		Entry("mode near the tan 2U asymptote, d=10", guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 10, Wavelength: 1.55, Polarization: guide.TE}),
	)

	It("agrees with ray theory across a fine thickness sweep", func() {
		base := guide.Spec{Core: 1.5, Substrate: 1.45, Wavelength: 1.55}
		for _, pol := range []guide.Polarization{guide.TE, guide.TM} {
			for k := 0; k < 600; k++ {
				d := 0.2 + 0.02*float64(k)
				spec := base.WithThickness(d).WithPolarization(pol)
				ray, err := analysis.Analyze(spec, guide.Ray, opts)
				Expect(err).NotTo(HaveOccurred())
				wave, err := analysis.Analyze(spec, guide.Wave, opts)
				Expect(err).NotTo(HaveOccurred())
				Expect(wave).To(HaveLen(len(ray)), "%s d=%.2f", pol, d)
				for i := range wave {
					Expect(wave[i].Err).NotTo(HaveOccurred(), "%s d=%.2f m=%d", pol, d, i)
				}
			}
		}
	})

	DescribeTable("reference incidence angles for n1=1.5 n2=1 d=lambda",
		func(theory guide.Theory, pol guide.Polarization, want []float64) {
			spec := guide.Spec{Core: 1.5, Substrate: 1, Thickness: 1, Wavelength: 1, Polarization: pol}
			modes, err := analysis.Analyze(spec, theory, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(modes).To(HaveLen(len(want)))
			for i, m := range modes {
				theta, ok := m.Params.Value(guide.ParamIncidenceAngle)
				Expect(ok).To(BeTrue())
				Expect(theta).To(BeNumerically("~", want[i], 0.1))
			}
		},
		Entry("ray TE", guide.Ray, guide.TE, []float64{75.0, 59.5, 43.8}),
		Entry("wave TE", guide.Wave, guide.TE, []float64{75.0, 59.5, 43.8}),
		Entry("ray TM", guide.Ray, guide.TM, []float64{72.9, 55.5, 42.5}),
		Entry("wave TM", guide.Wave, guide.TM, []float64{72.9, 55.5, 42.5}),
	)

	Context("with an invalid spec", func() {
		It("rejects a core index below the cladding", func() {
			spec := guide.Spec{Core: 1.4, Substrate: 1.45, Thickness: 5, Wavelength: 1.55, Polarization: guide.TE}
			_, err := analysis.Analyze(spec, guide.Wave, opts)
			Expect(err).To(MatchError(guide.ErrInvalidSpec))
		})

		It("rejects a non-positive thickness", func() {
			spec := guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 0, Wavelength: 1.55, Polarization: guide.TE}
			_, err := analysis.Analyze(spec, guide.Ray, opts)
			Expect(err).To(MatchError(guide.ErrInvalidSpec))
		})

		It("rejects a NaN wavelength", func() {
			spec := guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 5, Wavelength: math.NaN(), Polarization: guide.TE}
			_, err := analysis.Analyze(spec, guide.Ray, opts)
			Expect(err).To(MatchError(guide.ErrInvalidSpec))
		})

		It("rejects an unknown theory", func() {
			spec := guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 5, Wavelength: 1.55, Polarization: guide.TE}
			_, err := analysis.Analyze(spec, guide.Theory("quantum"), opts)
			Expect(err).To(MatchError(guide.ErrUnknownTheory))
		})
	})
})

var _ = Describe("AnalyzeAll", func() {
	spec := guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 5, Wavelength: 1.55}

	It("solves every theory and polarization in order", func() {
		theories := []guide.Theory{guide.Ray, guide.Wave}
		pols := []guide.Polarization{guide.TE, guide.TM}

		results, err := analysis.AnalyzeAll(context.Background(), spec, theories, pols, quietOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))

		for i, r := range results {
			Expect(r.Theory).To(Equal(theories[i/2]))
			Expect(r.Spec.Polarization).To(Equal(pols[i%2]))
			Expect(r.Modes).To(HaveLen(3))
		}
	})

	It("fails as a whole when the waveguide is invalid", func() {
		_, err := analysis.AnalyzeAll(context.Background(), spec.WithThickness(-1), []guide.Theory{guide.Wave}, []guide.Polarization{guide.TE, guide.TM}, quietOptions())
		Expect(err).To(MatchError(guide.ErrInvalidSpec))
	})
})

var _ = Describe("ThicknessSweep", func() {
	It("gains modes as the core thickens", func() {
		spec := guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 1, Wavelength: 1.55, Polarization: guide.TE}
		points, err := analysis.ThicknessSweep(context.Background(), spec, guide.Wave, 0.1, 10, 12, quietOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(HaveLen(12))

		Expect(points[0].Modes).To(Equal(0))
		Expect(points[len(points)-1].Modes).To(BeNumerically(">", 1))
		for i := 1; i < len(points); i++ {
			Expect(points[i].Thickness).To(BeNumerically(">", points[i-1].Thickness))
			Expect(points[i].Modes).To(BeNumerically(">=", points[i-1].Modes))
			Expect(points[i].NEff).To(HaveLen(points[i].Modes))
		}
	})

	It("stops on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		spec := guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 1, Wavelength: 1.55, Polarization: guide.TE}
		_, err := analysis.ThicknessSweep(ctx, spec, guide.Wave, 1, 2, 4, quietOptions())
		Expect(err).To(MatchError(context.Canceled))
	})
})
