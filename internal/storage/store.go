// Package storage persists harness runs: metadata, the mid-plane density
// slice, the radial density profile and the sampled orbit track, one
// directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string    `json:"id"`
	Preset        string    `json:"preset,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Steps         int       `json:"steps"`
	Orbits        float64   `json:"orbits"`
	Eccentricity  float64   `json:"eccentricity"`
	FinalPhase    float64   `json:"final_phase"`
	CellsInjected int       `json:"cells_injected"`
}

// OrbitSample is one row of the orbit track.
type OrbitSample struct {
	Time       float64
	Phase      float64
	X1, Y1     float64
	X2, Y2     float64
	Separation float64
}

func (s *Store) runDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// Create allocates a run directory and returns its id.
func (s *Store) Create(prefix string) (string, error) {
	runID := fmt.Sprintf("%s_%d", prefix, time.Now().Unix())
	if err := os.MkdirAll(s.runDir(runID), 0755); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) SaveMetadata(runID string, meta RunMetadata) error {
	f, err := os.Create(filepath.Join(s.runDir(runID), "metadata.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// SaveSlice writes a 2D field slice as CSV, one row per j index.
func (s *Store) SaveSlice(runID, name string, slice [][]float64) error {
	f, err := os.Create(filepath.Join(s.runDir(runID), name+".csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	row := make([]string, 0)
	for _, vals := range slice {
		row = row[:0]
		for _, v := range vals {
			row = append(row, strconv.FormatFloat(v, 'e', 8, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// SaveProfile writes (radius, density) pairs as CSV with a header.
func (s *Store) SaveProfile(runID string, radii, densities []float64) error {
	f, err := os.Create(filepath.Join(s.runDir(runID), "profile.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"radius", "density"}); err != nil {
		return err
	}
	for i := range radii {
		if err := w.Write([]string{
			strconv.FormatFloat(radii[i], 'e', 8, 64),
			strconv.FormatFloat(densities[i], 'e', 8, 64),
		}); err != nil {
			return err
		}
	}
	return w.Error()
}

// LoadProfile reads the radial profile saved by SaveProfile.
func (s *Store) LoadProfile(runID string) (radii, densities []float64, err error) {
	f, err := os.Open(filepath.Join(s.runDir(runID), "profile.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		r, err := strconv.ParseFloat(records[i][0], 64)
		if err != nil {
			return nil, nil, err
		}
		d, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			return nil, nil, err
		}
		radii = append(radii, r)
		densities = append(densities, d)
	}
	return radii, densities, nil
}

// SaveOrbitTrack writes the sampled orbit as CSV.
func (s *Store) SaveOrbitTrack(runID string, samples []OrbitSample) error {
	f, err := os.Create(filepath.Join(s.runDir(runID), "orbit.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "phase", "x1", "y1", "x2", "y2", "separation"}); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.FormatFloat(smp.Time, 'f', 6, 64),
			strconv.FormatFloat(smp.Phase, 'f', 6, 64),
			strconv.FormatFloat(smp.X1, 'f', 6, 64),
			strconv.FormatFloat(smp.Y1, 'f', 6, 64),
			strconv.FormatFloat(smp.X2, 'f', 6, 64),
			strconv.FormatFloat(smp.Y2, 'f', 6, 64),
			strconv.FormatFloat(smp.Separation, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// SaveRaw writes an already-rendered artifact (an SVG, say) into the run
// directory.
func (s *Store) SaveRaw(runID, name string, data []byte) error {
	return os.WriteFile(filepath.Join(s.runDir(runID), name), data, 0644)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.runDir(runID), "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
