// Package export renders run diagnostics to standalone files.
package export

import (
	"fmt"
	"strings"

	"github.com/bbw7561135/Stellar-winds/internal/storage"
)

// OrbitToSVG draws both stars' orbital tracks and, at the final sample,
// their wind spheres to scale. Returns "" when there is nothing to draw.
func OrbitToSVG(samples []storage.OrbitSample, radius1, radius2 float64, width, height int) string {
	if len(samples) < 2 {
		return ""
	}

	// Bounds over both tracks, padded by the larger wind radius.
	pad := radius1
	if radius2 > pad {
		pad = radius2
	}
	minX, maxX := samples[0].X1, samples[0].X1
	minY, maxY := samples[0].Y1, samples[0].Y1
	for _, s := range samples {
		for _, p := range [][2]float64{{s.X1, s.Y1}, {s.X2, s.Y2}} {
			if p[0] < minX {
				minX = p[0]
			}
			if p[0] > maxX {
				maxX = p[0]
			}
			if p[1] < minY {
				minY = p[1]
			}
			if p[1] > maxY {
				maxY = p[1]
			}
		}
	}
	minX, maxX = minX-pad, maxX+pad
	minY, maxY = minY-pad, maxY+pad
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	px := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	py := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	writeTrack := func(color string, xs func(storage.OrbitSample) (float64, float64)) {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for i, s := range samples {
			x, y := xs(s)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(x), py(y)))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(x), py(y)))
			}
		}
		sb.WriteString("\"/>\n")
	}
	writeTrack("#00ff00", func(s storage.OrbitSample) (float64, float64) { return s.X1, s.Y1 })
	writeTrack("#00aaff", func(s storage.OrbitSample) (float64, float64) { return s.X2, s.Y2 })

	last := samples[len(samples)-1]
	rScale := float64(width) / rangeX
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#00ff00"/>
`, px(last.X1), py(last.Y1), radius1*rScale))
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#00aaff"/>
`, px(last.X2), py(last.Y2), radius2*rScale))

	sb.WriteString("</svg>")
	return sb.String()
}
