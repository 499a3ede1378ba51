package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davrolle/vservo/internal/sim"
)

// Store persists servo runs on disk, one directory per run holding a
// metadata.json plus an iterations.csv trace.
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
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	Mode        string             `json:"mode"`
	Interaction string             `json:"interaction"`
	Gain        string             `json:"gain"`
	Dt          float64            `json:"dt"`
	Iterations  int                `json:"iterations"`
	Converged   bool               `json:"converged"`
	FinalError  float64            `json:"final_error"`
	Metrics     map[string]float64 `json:"metrics"`
}

func (s *Store) Save(scenario, mode, interaction, gain string, dt float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", scenario, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Scenario:    scenario,
		Timestamp:   time.Now(),
		Mode:        mode,
		Interaction: interaction,
		Gain:        gain,
		Dt:          dt,
		Iterations:  result.Iterations,
		Converged:   result.Converged,
		FinalError:  result.FinalError,
		Metrics:     result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "iterations.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Records) == 0 {
		return runID, nil
	}

	first := result.Records[0]
	header := []string{"time"}
	for i := range first.Velocity {
		header = append(header, fmt.Sprintf("v%d", i))
	}
	for i := range first.Error {
		header = append(header, fmt.Sprintf("e%d", i))
	}
	header = append(header, "error_norm")

	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, rec := range result.Records {
		row := []string{strconv.FormatFloat(rec.Time, 'f', 6, 64)}

		for _, val := range rec.Velocity {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		for _, val := range rec.Error {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		row = append(row, strconv.FormatFloat(rec.ErrorNorm, 'f', 6, 64))

		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// Series is the column-oriented view of a saved iterations.csv.
type Series struct {
	Times      []float64
	Velocities [][]float64
	Errors     [][]float64
	Norms      []float64
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	csvPath := filepath.Join(s.baseDir, runID, "iterations.csv")
	file, err := os.Open(csvPath)
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

	if len(records) < 2 {
		return &Series{}, nil
	}

	header := records[0]
	numVel := 0
	numErr := 0
	for _, col := range header[1:] {
		switch {
		case col == "error_norm":
		case strings.HasPrefix(col, "v"):
			numVel++
		case strings.HasPrefix(col, "e"):
			numErr++
		}
	}

	series := &Series{
		Times:      make([]float64, 0, len(records)-1),
		Velocities: make([][]float64, 0, len(records)-1),
		Errors:     make([][]float64, 0, len(records)-1),
		Norms:      make([]float64, 0, len(records)-1),
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != len(header) {
			continue
		}

		vals := make([]float64, len(record))
		ok := true
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		series.Times = append(series.Times, vals[0])
		series.Velocities = append(series.Velocities, vals[1:1+numVel])
		series.Errors = append(series.Errors, vals[1+numVel:1+numVel+numErr])
		series.Norms = append(series.Norms, vals[1+numVel+numErr])
	}

	return series, nil
}
