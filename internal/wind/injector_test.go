package wind_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bbw7561135/Stellar-winds/internal/geom"
	"github.com/bbw7561135/Stellar-winds/internal/grid"
	"github.com/bbw7561135/Stellar-winds/internal/units"
	"github.com/bbw7561135/Stellar-winds/internal/wind"
)

const gamma = 5.0 / 3.0

// newTestBlock builds a 10x10x10 unit cube at dx=0.25 with two ghost layers
// and one passive slot past the hydro block, pre-filled with an ambient
// state so overwrites are distinguishable.
func newTestBlock() *grid.Block {
	b, err := grid.NewBlock(40, 40, 40, 2, 6, geom.Vec3{}, 0.25, 0.25, 0.25)
	Expect(err).NotTo(HaveOccurred())
	b.FillUniform(grid.Rho, 1.0)
	b.FillUniform(grid.MomX, 0.1)
	b.FillUniform(grid.MomY, -0.2)
	b.FillUniform(grid.MomZ, 0.05)
	b.FillUniform(grid.Energy, 2.0)
	b.FillUniform(5, 7.0)
	return b
}

var _ = Describe("NewInjector", func() {
	It("rejects an adiabatic index at or below 1", func() {
		_, err := wind.NewInjector(1.0, units.DefaultScales())
		Expect(err).To(MatchError(wind.ErrBadGamma))
	})

	It("rejects invalid unit scales", func() {
		_, err := wind.NewInjector(gamma, units.Scales{Length: 0, Mass: 1, Time: 1})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Impose", func() {
	var (
		b   *grid.Block
		in  *wind.Injector
		src *wind.Source
		sc  units.Scales
	)

	// Source center coincides with the cell center at index (22,22,22),
	// x = (22-2+0.5)*0.25 = 5.125.
	center := geom.Vec3{X: 5.125, Y: 5.125, Z: 5.125}

	BeforeEach(func() {
		var err error
		sc = units.DefaultScales()
		in, err = wind.NewInjector(gamma, sc)
		Expect(err).NotTo(HaveOccurred())

		src, err = wind.NewSource(center, 2.0, 4.5e-7, sc.VelocityFromKms(1000), 1e4, 0.6)
		Expect(err).NotTo(HaveOccurred())

		b = newTestBlock()
	})

	It("overwrites exactly the cells strictly inside the radius", func() {
		before := b.Clone()
		written := in.Impose(src, b)
		Expect(written).To(BeNumerically(">", 0))

		rhoCoeff := src.MassLossRate() / (4 * math.Pi * src.TerminalVelocity())
		count := 0
		for k := 0; k < b.TotalZ(); k++ {
			for j := 0; j < b.TotalY(); j++ {
				for i := 0; i < b.TotalX(); i++ {
					d := b.CellCenter(i, j, k).DistanceTo(center)
					if d < src.Radius() {
						count++
						r := math.Max(d, 0.5*b.MinSpacing())
						Expect(b.At(grid.Rho, i, j, k)).To(BeNumerically("~", rhoCoeff/(r*r), 1e-12))
					} else {
						for v := 0; v < b.NVar; v++ {
							Expect(b.At(v, i, j, k)).To(Equal(before.At(v, i, j, k)))
						}
					}
				}
			}
		}
		Expect(written).To(Equal(count))
	})

	It("treats a cell exactly on the sphere as outside", func() {
		// Radius 1.0 is an exact multiple of dx, so the cell one unit along
		// x from the center sits exactly on the boundary.
		onAxis, err := wind.NewSource(center, 1.0, 4.5e-7, src.TerminalVelocity(), 1e4, 0.6)
		Expect(err).NotTo(HaveOccurred())

		in.Impose(onAxis, b)
		Expect(b.At(grid.Rho, 26, 22, 22)).To(Equal(1.0), "boundary cell must keep ambient density")
		Expect(b.At(grid.Rho, 25, 22, 22)).NotTo(Equal(1.0), "interior cell must be overwritten")
	})

	It("is idempotent", func() {
		in.Impose(src, b)
		once := b.Clone()
		in.Impose(src, b)
		for k := 0; k < b.TotalZ(); k++ {
			for j := 0; j < b.TotalY(); j++ {
				for i := 0; i < b.TotalX(); i++ {
					for v := 0; v < b.NVar; v++ {
						Expect(b.At(v, i, j, k)).To(Equal(once.At(v, i, j, k)))
					}
				}
			}
		}
	})

	It("injects a purely radial velocity at terminal speed", func() {
		in.Impose(src, b)
		for k := 0; k < b.TotalZ(); k++ {
			for j := 0; j < b.TotalY(); j++ {
				for i := 0; i < b.TotalX(); i++ {
					rel := b.CellCenter(i, j, k).Sub(center)
					d := rel.Norm()
					if d >= src.Radius() || d == 0 {
						continue
					}
					rho := b.At(grid.Rho, i, j, k)
					v := geom.Vec3{
						X: b.At(grid.MomX, i, j, k) / rho,
						Y: b.At(grid.MomY, i, j, k) / rho,
						Z: b.At(grid.MomZ, i, j, k) / rho,
					}
					Expect(v.Norm()).To(BeNumerically("~", src.TerminalVelocity(), 1e-9))
					// Parallel to the radial direction: v . rhat = |v|.
					Expect(v.Dot(rel.Unit())).To(BeNumerically("~", v.Norm(), 1e-9))
				}
			}
		}
	})

	It("gives the center cell the floored density and zero momentum", func() {
		in.Impose(src, b)
		rMin := 0.5 * b.MinSpacing()
		wantRho := src.MassLossRate() / (4 * math.Pi * rMin * rMin * src.TerminalVelocity())
		Expect(b.At(grid.Rho, 22, 22, 22)).To(BeNumerically("~", wantRho, 1e-12))
		Expect(b.At(grid.MomX, 22, 22, 22)).To(BeZero())
		Expect(b.At(grid.MomY, 22, 22, 22)).To(BeZero())
		Expect(b.At(grid.MomZ, 22, 22, 22)).To(BeZero())
	})

	It("adds the ideal-gas thermal term to the energy", func() {
		in.Impose(src, b)
		// Cell one spacing along y from the center.
		i, j, k := 22, 23, 22
		rho := b.At(grid.Rho, i, j, k)
		kinetic := 0.5 * rho * src.TerminalVelocity() * src.TerminalVelocity()
		thermal := rho * sc.SpecificThermal(src.Temperature(), src.MeanMolecularWeight()) / (gamma - 1)
		Expect(b.At(grid.Energy, i, j, k)).To(BeNumerically("~", kinetic+thermal, 1e-12))
	})

	It("leaves slots past the hydro block untouched", func() {
		in.Impose(src, b)
		Expect(b.At(5, 22, 22, 22)).To(Equal(7.0))
		Expect(b.At(5, 23, 22, 22)).To(Equal(7.0))
	})

	It("matches the analytic density in physical units", func() {
		// 2 AU source, 4.5e-7 Msun/yr at 1000 km/s: density one AU out must
		// equal Mdot/(4 pi AU^2 v_inf) in cgs, converted to internal units.
		in.Impose(src, b)

		cgs := 4.5e-7 * units.MSunYr / (4 * math.Pi * units.AU * units.AU * 1000 * units.KmPerSec)
		want := cgs / sc.Density()
		got := b.At(grid.Rho, 26, 22, 22) // one internal length unit (1 AU) along x
		Expect(got).To(BeNumerically("~", want, want*1e-6))
	})

	It("writes nothing when the sphere misses the block", func() {
		far, err := wind.NewSource(geom.Vec3{X: 100, Y: 100, Z: 100}, 2.0, 4.5e-7, src.TerminalVelocity(), 1e4, 0.6)
		Expect(err).NotTo(HaveOccurred())
		before := b.Clone()
		Expect(in.Impose(far, b)).To(BeZero())
		Expect(b.At(grid.Rho, 22, 22, 22)).To(Equal(before.At(grid.Rho, 22, 22, 22)))
	})

	It("clips the sphere against the block bounds", func() {
		// Center in the ghost margin near the low-x face; part of the
		// sphere hangs off the array.
		edge, err := wind.NewSource(geom.Vec3{X: -0.3, Y: 5.125, Z: 5.125}, 2.0, 4.5e-7, src.TerminalVelocity(), 1e4, 0.6)
		Expect(err).NotTo(HaveOccurred())
		Expect(in.Impose(edge, b)).To(BeNumerically(">", 0))
	})
})
