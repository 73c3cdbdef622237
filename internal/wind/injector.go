package wind

import (
	"math"

	"github.com/bbw7561135/Stellar-winds/internal/grid"
	"github.com/bbw7561135/Stellar-winds/internal/units"
)

// Injector overwrites cells inside a source's radius with the analytic
// steady wind: rho = Mdot/(4 pi r^2 v_inf), purely radial velocity at
// terminal speed, and total energy from the kinetic term plus the ideal-gas
// thermal term. Read-only shared state during injection; safe to apply to
// distinct blocks concurrently.
type Injector struct {
	gamma  float64
	scales units.Scales
}

func NewInjector(gamma float64, sc units.Scales) (*Injector, error) {
	if gamma <= 1 {
		return nil, ErrBadGamma
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &Injector{gamma: gamma, scales: sc}, nil
}

func (in *Injector) Gamma() float64 { return in.gamma }

// Impose overwrites every cell of b whose center lies strictly inside the
// source radius; cells exactly on the sphere are left alone, same policy at
// initialization and every refresh. The radial coordinate in the density
// formula is floored at half the smallest cell width, which bounds the peak
// density when a cell center coincides with the source. A cell exactly at
// the center gets zero velocity, the radial direction being undefined
// there. Pure overwrite: applying it twice equals applying it once.
//
// Only the five hydrodynamic slots are written; magnetic-field and
// passive-scalar slots keep whatever the host put there. Returns the number
// of cells overwritten.
func (in *Injector) Impose(src *Source, b *grid.Block) int {
	c := src.Center()
	radius := src.Radius()
	rMin := 0.5 * b.MinSpacing()

	// Specific thermal energy kT/(mu mH (gamma-1)) in internal units;
	// multiplied by rho below it gives the thermal energy density.
	eth := in.scales.SpecificThermal(src.Temperature(), src.MeanMolecularWeight()) / (in.gamma - 1)

	vInf := src.TerminalVelocity()
	rhoCoeff := src.MassLossRate() / (4 * math.Pi * vInf)
	r2 := radius * radius

	// Index bounds of the sphere's bounding box, clamped to the block.
	// One cell of slack each way; the distance test below decides.
	iLo, iHi := boundRange(c.X-radius, c.X+radius, b.Origin.X, b.Dx, b.Ghost, b.TotalX())
	jLo, jHi := boundRange(c.Y-radius, c.Y+radius, b.Origin.Y, b.Dy, b.Ghost, b.TotalY())
	kLo, kHi := boundRange(c.Z-radius, c.Z+radius, b.Origin.Z, b.Dz, b.Ghost, b.TotalZ())

	written := 0
	for k := kLo; k <= kHi; k++ {
		for j := jLo; j <= jHi; j++ {
			for i := iLo; i <= iHi; i++ {
				cell := b.CellCenter(i, j, k)
				dx := cell.X - c.X
				dy := cell.Y - c.Y
				dz := cell.Z - c.Z
				d2 := dx*dx + dy*dy + dz*dz
				if d2 >= r2 {
					continue
				}

				dist := math.Sqrt(d2)
				r := dist
				if r < rMin {
					r = rMin
				}
				rho := rhoCoeff / (r * r)

				var vx, vy, vz, kinetic float64
				if dist > 0 {
					s := vInf / dist
					vx, vy, vz = s*dx, s*dy, s*dz
					kinetic = 0.5 * rho * vInf * vInf
				}

				b.Set(grid.Rho, i, j, k, rho)
				b.Set(grid.MomX, i, j, k, rho*vx)
				b.Set(grid.MomY, i, j, k, rho*vy)
				b.Set(grid.MomZ, i, j, k, rho*vz)
				b.Set(grid.Energy, i, j, k, kinetic+rho*eth)
				written++
			}
		}
	}
	return written
}

// boundRange maps a physical interval to a clamped index range along one
// axis, ghosts included.
func boundRange(lo, hi, origin, spacing float64, ghost, total int) (int, int) {
	iLo := int(math.Floor((lo-origin)/spacing)) + ghost - 1
	iHi := int(math.Ceil((hi-origin)/spacing)) + ghost + 1
	if iLo < 0 {
		iLo = 0
	}
	if iHi > total-1 {
		iHi = total - 1
	}
	return iLo, iHi
}
