// Package viz renders diagnostic views of the injected field: the mid-plane
// density slice as ASCII art and a live terminal view of the orbit.
package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bbw7561135/Stellar-winds/internal/grid"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	frameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Density ramp from thin to dense.
const ramp = " .:-=+*#%@"

// MidplaneSlice extracts equation v on the interior mid-z plane,
// row-major in j.
func MidplaneSlice(b *grid.Block, v int) [][]float64 {
	k := b.Ghost + b.Nz/2
	slice := make([][]float64, b.Ny)
	for j := 0; j < b.Ny; j++ {
		row := make([]float64, b.Nx)
		for i := 0; i < b.Nx; i++ {
			row[i] = b.At(v, i+b.Ghost, j+b.Ghost, k)
		}
		slice[j] = row
	}
	return slice
}

// RenderSlice maps a field slice to ASCII on a log scale between its own
// minimum and maximum. Rows are downsampled to at most maxCols columns,
// keeping a roughly 2:1 character aspect.
func RenderSlice(slice [][]float64, title string, maxCols int) string {
	if len(slice) == 0 || len(slice[0]) == 0 {
		return ""
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range slice {
		for _, v := range row {
			if v <= 0 {
				continue
			}
			l := math.Log10(v)
			if l < lo {
				lo = l
			}
			if l > hi {
				hi = l
			}
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 1
	}
	if hi == lo {
		hi = lo + 1
	}

	nx, ny := len(slice[0]), len(slice)
	stepX := 1
	if nx > maxCols {
		stepX = (nx + maxCols - 1) / maxCols
	}
	stepY := 2 * stepX

	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteByte('\n')

	cols := (nx + stepX - 1) / stepX
	b.WriteString(frameStyle.Render("+" + strings.Repeat("-", cols) + "+"))
	b.WriteByte('\n')
	for j := 0; j < ny; j += stepY {
		b.WriteString(frameStyle.Render("|"))
		for i := 0; i < nx; i += stepX {
			v := slice[j][i]
			idx := 0
			if v > 0 {
				f := (math.Log10(v) - lo) / (hi - lo)
				idx = int(f * float64(len(ramp)-1))
				if idx < 0 {
					idx = 0
				}
				if idx > len(ramp)-1 {
					idx = len(ramp) - 1
				}
			}
			b.WriteByte(ramp[idx])
		}
		b.WriteString(frameStyle.Render("|"))
		b.WriteByte('\n')
	}
	b.WriteString(frameStyle.Render("+" + strings.Repeat("-", cols) + "+"))
	b.WriteByte('\n')
	return b.String()
}

// RadialProfile samples equation v along the +x direction from the cell
// nearest to (cx, cy) in the mid-z plane, returning distances and values of
// the interior cells on that ray.
func RadialProfile(b *grid.Block, v int, cx, cy float64) (radii, vals []float64) {
	k := b.Ghost + b.Nz/2
	j := nearestIndex(cy, b.Origin.Y, b.Dy, b.Ghost, b.Ny)
	i0 := nearestIndex(cx, b.Origin.X, b.Dx, b.Ghost, b.Nx)

	for i := i0; i < b.Nx+b.Ghost; i++ {
		c := b.CellCenter(i, j, k)
		radii = append(radii, c.X-cx)
		vals = append(vals, b.At(v, i, j, k))
	}
	return radii, vals
}

func nearestIndex(x, origin, spacing float64, ghost, n int) int {
	i := int(math.Round((x-origin)/spacing-0.5)) + ghost
	if i < ghost {
		i = ghost
	}
	if i > ghost+n-1 {
		i = ghost + n - 1
	}
	return i
}
