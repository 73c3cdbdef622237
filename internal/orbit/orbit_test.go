package orbit

import (
	"errors"
	"math"
	"testing"

	"github.com/bbw7561135/Stellar-winds/internal/geom"
)

func testElements(e float64) Elements {
	return Elements{
		Period:        1.0,
		Eccentricity:  e,
		SemiMajorAxis: 4.0,
		MassRatio:     0.5,
		Center:        geom.Vec3{X: 10, Y: 10, Z: 5},
	}
}

func TestNewModelValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Elements)
		wantErr error
	}{
		{"valid", func(el *Elements) {}, nil},
		{"zero period", func(el *Elements) { el.Period = 0 }, ErrBadPeriod},
		{"negative period", func(el *Elements) { el.Period = -1 }, ErrBadPeriod},
		{"eccentricity one", func(el *Elements) { el.Eccentricity = 1 }, ErrBadEccentricity},
		{"negative eccentricity", func(el *Elements) { el.Eccentricity = -0.1 }, ErrBadEccentricity},
		{"zero separation", func(el *Elements) { el.SemiMajorAxis = 0 }, ErrBadSeparation},
		{"zero mass ratio", func(el *Elements) { el.MassRatio = 0 }, ErrBadMassRatio},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := testElements(0.3)
			tt.mutate(&el)
			_, err := NewModel(el)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewModel() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWrapPhase(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.25},
		{1.0, 0},
		{1.75, 0.75},
		{-0.25, 0.75},
		{3.5, 0.5},
	}
	for _, tt := range tests {
		if got := WrapPhase(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WrapPhase(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestBinaryDeterministic(t *testing.T) {
	m, err := NewModel(testElements(0.4))
	if err != nil {
		t.Fatal(err)
	}
	a := m.Binary(0.37)
	b := m.Binary(0.37)
	if a != b {
		t.Errorf("same phase gave different states:\n%+v\n%+v", a, b)
	}
}

func TestPeriastronIsMinimumSeparation(t *testing.T) {
	for _, e := range []float64{0, 0.3, 0.7} {
		m, err := NewModel(testElements(e))
		if err != nil {
			t.Fatal(err)
		}
		peri := m.Binary(0).Separation()
		for p := 0.0; p < 1.0; p += 0.01 {
			if sep := m.Binary(p).Separation(); sep < peri-1e-9 {
				t.Errorf("e=%g: separation %g at phase %g below periastron %g", e, sep, p, peri)
			}
		}

		// Apoastron at phase 0.5.
		apo := m.Binary(0.5).Separation()
		want := m.el.SemiMajorAxis * (1 + e)
		if math.Abs(apo-want) > 1e-9 {
			t.Errorf("e=%g: apoastron separation %g, want %g", e, apo, want)
		}
	}
}

func TestCircularOrbitSeparationConstant(t *testing.T) {
	m, err := NewModel(testElements(0))
	if err != nil {
		t.Fatal(err)
	}
	want := m.el.SemiMajorAxis
	for p := 0.0; p < 1.0; p += 0.05 {
		if sep := m.Binary(p).Separation(); math.Abs(sep-want) > 1e-9 {
			t.Errorf("circular orbit separation %g at phase %g, want %g", sep, p, want)
		}
	}
}

func TestBarycenterFixed(t *testing.T) {
	el := testElements(0.5)
	m, err := NewModel(el)
	if err != nil {
		t.Fatal(err)
	}
	// m1*r1 + m2*r2 about the center must vanish; with q = m2/m1,
	// r1 + q*r2 = (1+q)*center.
	q := el.MassRatio
	for p := 0.0; p < 1.0; p += 0.1 {
		st := m.Binary(p)
		bx := (st.Pos1.X + q*st.Pos2.X) / (1 + q)
		by := (st.Pos1.Y + q*st.Pos2.Y) / (1 + q)
		if math.Abs(bx-el.Center.X) > 1e-9 || math.Abs(by-el.Center.Y) > 1e-9 {
			t.Errorf("phase %g: barycenter drifted to (%g,%g)", p, bx, by)
		}
	}
}

func TestOrbitStaysInPlane(t *testing.T) {
	el := testElements(0.6)
	m, err := NewModel(el)
	if err != nil {
		t.Fatal(err)
	}
	for p := 0.0; p < 1.0; p += 0.1 {
		st := m.Binary(p)
		if st.Pos1.Z != el.Center.Z || st.Pos2.Z != el.Center.Z {
			t.Errorf("phase %g: positions left the orbital plane", p)
		}
		if st.Vel1.Z != 0 || st.Vel2.Z != 0 {
			t.Errorf("phase %g: nonzero z-velocity", p)
		}
	}
}

func TestFullPeriodReturnsToStart(t *testing.T) {
	m, err := NewModel(testElements(0.4))
	if err != nil {
		t.Fatal(err)
	}
	a := m.Binary(0.2)
	b := m.Binary(1.2)
	if a.Pos1.DistanceTo(b.Pos1) > 1e-9 || a.Pos2.DistanceTo(b.Pos2) > 1e-9 {
		t.Errorf("state after one full period differs:\n%+v\n%+v", a, b)
	}
}

func TestSolveKeplerConverges(t *testing.T) {
	for _, e := range []float64{0, 0.1, 0.5, 0.9, 0.99} {
		for M := 0.0; M < 2*math.Pi; M += 0.3 {
			E, err := solveKepler(M, e)
			if err != nil {
				t.Fatalf("e=%g M=%g: %v", e, M, err)
			}
			if resid := E - e*math.Sin(E) - M; math.Abs(resid) > 1e-9 {
				t.Errorf("e=%g M=%g: residual %g", e, M, resid)
			}
		}
	}
}

func TestNonConvergedCounterStartsAtZero(t *testing.T) {
	m, err := NewModel(testElements(0.9))
	if err != nil {
		t.Fatal(err)
	}
	for p := 0.0; p < 1.0; p += 0.01 {
		m.Binary(p)
	}
	if n := m.NonConverged(); n != 0 {
		t.Errorf("expected no non-convergences for e=0.9, got %d", n)
	}
}
