package export

import (
	"strings"
	"testing"

	"github.com/bbw7561135/Stellar-winds/internal/storage"
)

func TestOrbitToSVG(t *testing.T) {
	samples := []storage.OrbitSample{
		{X1: 1, Y1: 0, X2: -1, Y2: 0, Separation: 2},
		{X1: 0, Y1: 1, X2: 0, Y2: -1, Separation: 2},
		{X1: -1, Y1: 0, X2: 1, Y2: 0, Separation: 2},
	}
	svg := OrbitToSVG(samples, 0.5, 0.3, 400, 400)

	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("missing XML header")
	}
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("expected 2 tracks, got %d", got)
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 wind spheres, got %d", got)
	}
}

func TestOrbitToSVGTooFewSamples(t *testing.T) {
	if svg := OrbitToSVG([]storage.OrbitSample{{}}, 1, 1, 100, 100); svg != "" {
		t.Errorf("expected empty output, got %d bytes", len(svg))
	}
}
