// Package grid provides a bounded view over one block of the host's
// conserved-variable array: (equation, i, j, k) indexing with a ghost-cell
// margin and physical cell-center lookup. The view is borrowed by callers
// that overwrite cells; it is allocated here only for standalone use, the
// host engine owns the real thing.
package grid

import (
	"fmt"

	"github.com/bbw7561135/Stellar-winds/internal/geom"
)

// Conserved-variable slots. Slots past Energy (magnetic field components,
// passive scalars) belong to the host's convention and are never written by
// the wind machinery.
const (
	Rho    = 0
	MomX   = 1
	MomY   = 2
	MomZ   = 3
	Energy = 4

	NumHydro = 5
)

// Block is one block's conserved-variable field. Indices i, j, k run over
// interior plus ghost cells, 0 .. N+2*Ghost-1 per axis.
type Block struct {
	Nx, Ny, Nz int // interior cells per axis
	Ghost      int // ghost-layer depth
	NVar       int // equations per cell, >= NumHydro

	Dx, Dy, Dz float64
	Origin     geom.Vec3 // lower corner of the interior region

	data []float64
}

// NewBlock allocates a zeroed block. The host hands its own storage to the
// injector in production; this constructor serves the standalone harness
// and tests.
func NewBlock(nx, ny, nz, ghost, nvar int, origin geom.Vec3, dx, dy, dz float64) (*Block, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("grid: cell counts must be positive, got %dx%dx%d", nx, ny, nz)
	}
	if ghost < 0 {
		return nil, fmt.Errorf("grid: ghost depth must be non-negative, got %d", ghost)
	}
	if nvar < NumHydro {
		return nil, fmt.Errorf("grid: need at least %d equations, got %d", NumHydro, nvar)
	}
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return nil, fmt.Errorf("grid: spacings must be positive, got (%g,%g,%g)", dx, dy, dz)
	}
	b := &Block{
		Nx: nx, Ny: ny, Nz: nz,
		Ghost: ghost, NVar: nvar,
		Dx: dx, Dy: dy, Dz: dz,
		Origin: origin,
	}
	b.data = make([]float64, nvar*b.TotalX()*b.TotalY()*b.TotalZ())
	return b, nil
}

// Total extents per axis, ghosts included.
func (b *Block) TotalX() int { return b.Nx + 2*b.Ghost }
func (b *Block) TotalY() int { return b.Ny + 2*b.Ghost }
func (b *Block) TotalZ() int { return b.Nz + 2*b.Ghost }

func (b *Block) index(v, i, j, k int) int {
	return ((v*b.TotalZ()+k)*b.TotalY()+j)*b.TotalX() + i
}

// At returns the value of equation v at cell (i,j,k).
func (b *Block) At(v, i, j, k int) float64 { return b.data[b.index(v, i, j, k)] }

// Set overwrites equation v at cell (i,j,k).
func (b *Block) Set(v, i, j, k int, val float64) { b.data[b.index(v, i, j, k)] = val }

// CellCenter returns the physical position of the center of cell (i,j,k).
// Ghost cells resolve to positions outside the interior region.
func (b *Block) CellCenter(i, j, k int) geom.Vec3 {
	return geom.Vec3{
		X: b.Origin.X + (float64(i-b.Ghost)+0.5)*b.Dx,
		Y: b.Origin.Y + (float64(j-b.Ghost)+0.5)*b.Dy,
		Z: b.Origin.Z + (float64(k-b.Ghost)+0.5)*b.Dz,
	}
}

// MinSpacing returns the smallest cell width across the three axes.
func (b *Block) MinSpacing() float64 {
	m := b.Dx
	if b.Dy < m {
		m = b.Dy
	}
	if b.Dz < m {
		m = b.Dz
	}
	return m
}

// FillUniform sets equation v to the same value in every cell, ghosts
// included. The standalone harness uses it to impose the ambient background
// the host engine would otherwise provide.
func (b *Block) FillUniform(v int, val float64) {
	stride := b.TotalX() * b.TotalY() * b.TotalZ()
	for i := v * stride; i < (v+1)*stride; i++ {
		b.data[i] = val
	}
}

// Clone deep-copies the block.
func (b *Block) Clone() *Block {
	c := *b
	c.data = make([]float64, len(b.data))
	copy(c.data, b.data)
	return &c
}
