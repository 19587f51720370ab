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

// Store persists render runs under a data directory: one subdirectory per
// run holding metadata.json, any exported frames, and per-frame timings for
// animations.
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
	Mode          string    `json:"mode"`
	Timestamp     time.Time `json:"timestamp"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	CenterX       float64   `json:"center_x"`
	CenterY       float64   `json:"center_y"`
	Zoom          float64   `json:"zoom"`
	MaxIter       int       `json:"max_iter"`
	EffectiveIter int       `json:"effective_iter"`
	Policy        string    `json:"policy"`
	Fidelity      string    `json:"fidelity"`
	ElapsedMS     float64   `json:"elapsed_ms"`
	Frames        int       `json:"frames"`
}

// FrameTiming records one animation frame: how long it took and which Julia
// constant it rendered.
type FrameTiming struct {
	Frame     int
	ElapsedMS float64
	CReal     float64
	CImag     float64
}

// Save creates the run directory and writes metadata plus, for animations,
// a frames.csv of per-frame timings. It returns the run ID.
func (s *Store) Save(meta RunMetadata, timings []FrameTiming) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Mode, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	if err := writeRun(runDir, meta, timings); err != nil {
		return "", err
	}
	return runID, nil
}

// Update rewrites the metadata and timing log of an existing run, e.g. once
// an animation has finished and its totals are known.
func (s *Store) Update(runID string, meta RunMetadata, timings []FrameTiming) error {
	runDir := filepath.Join(s.baseDir, runID)
	if _, err := os.Stat(runDir); err != nil {
		return fmt.Errorf("unknown run %s: %w", runID, err)
	}
	meta.ID = runID
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	return writeRun(runDir, meta, timings)
}

func writeRun(runDir string, meta RunMetadata, timings []FrameTiming) error {
	meta.Frames = len(timings)

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	if len(timings) == 0 {
		return nil
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"frame", "elapsed_ms", "c_real", "c_imag"}); err != nil {
		return err
	}
	for _, ft := range timings {
		row := []string{
			strconv.Itoa(ft.Frame),
			strconv.FormatFloat(ft.ElapsedMS, 'f', 3, 64),
			strconv.FormatFloat(ft.CReal, 'f', 6, 64),
			strconv.FormatFloat(ft.CImag, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// Dir returns the directory for a run, where frame images are written.
func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTimings reads the per-frame timing log of an animation run.
func (s *Store) LoadTimings(runID string) ([]FrameTiming, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	timings := make([]FrameTiming, 0, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 4 {
			continue
		}
		frame, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		elapsed, _ := strconv.ParseFloat(record[1], 64)
		cr, _ := strconv.ParseFloat(record[2], 64)
		ci, _ := strconv.ParseFloat(record[3], 64)
		timings = append(timings, FrameTiming{Frame: frame, ElapsedMS: elapsed, CReal: cr, CImag: ci})
	}

	return timings, nil
}
