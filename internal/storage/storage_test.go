package storage

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davrolle/vservo/internal/geom"
	"github.com/davrolle/vservo/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Records: []sim.Record{
			{
				Iteration: 0,
				Time:      0.0,
				Velocity:  geom.Vector{-0.3, 0, 0, 0, 0, 0.1},
				Error:     geom.Vector{0.3, -0.2},
				ErrorNorm: 0.360555,
				Rank:      2,
			},
			{
				Iteration: 1,
				Time:      0.1,
				Velocity:  geom.Vector{-0.27, 0, 0, 0, 0, 0.09},
				Error:     geom.Vector{0.27, -0.18},
				ErrorNorm: 0.3245,
				Rank:      2,
			},
		},
		Iterations: 2,
		Converged:  true,
		FinalError: 0.3245,
		Metrics: map[string]float64{
			"control_effort": 0.38,
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("point", "eye-in-hand-camera", "current", "0.50", 0.1, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	if !strings.HasPrefix(runID, "point_") {
		t.Errorf("expected run id prefixed with scenario, got %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Scenario != "point" {
		t.Errorf("expected scenario 'point', got '%s'", meta.Scenario)
	}

	if meta.Mode != "eye-in-hand-camera" {
		t.Errorf("expected mode 'eye-in-hand-camera', got '%s'", meta.Mode)
	}

	if !meta.Converged {
		t.Error("expected converged run")
	}

	if meta.Iterations != 2 {
		t.Errorf("expected 2 iterations, got %d", meta.Iterations)
	}

	if meta.Metrics["control_effort"] != 0.38 {
		t.Errorf("expected control_effort 0.38, got %f", meta.Metrics["control_effort"])
	}
}

func TestStoreLoadSeries(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("point", "eye-in-hand-camera", "current", "0.50", 0.1, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}

	if len(series.Times) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(series.Times))
	}

	if len(series.Velocities[0]) != 6 {
		t.Errorf("expected 6 velocity columns, got %d", len(series.Velocities[0]))
	}

	if len(series.Errors[0]) != 2 {
		t.Errorf("expected 2 error columns, got %d", len(series.Errors[0]))
	}

	if math.Abs(series.Times[1]-0.1) > 1e-9 {
		t.Errorf("expected time 0.1, got %f", series.Times[1])
	}

	if math.Abs(series.Velocities[1][0]+0.27) > 1e-9 {
		t.Errorf("expected v0 -0.27, got %f", series.Velocities[1][0])
	}

	if math.Abs(series.Errors[0][1]+0.2) > 1e-9 {
		t.Errorf("expected e1 -0.2, got %f", series.Errors[0][1])
	}

	if math.Abs(series.Norms[1]-0.3245) > 1e-9 {
		t.Errorf("expected norm 0.3245, got %f", series.Norms[1])
	}
}

func TestStoreSeriesSplitsAsymmetricColumns(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := &sim.Result{
		Records: []sim.Record{
			{
				Velocity:  geom.Vector{0.1, -0.2},
				Error:     geom.Vector{0.3, 0.1, -0.05, 0.02, 0.5},
				ErrorNorm: 0.6,
			},
		},
		Iterations: 1,
	}

	runID, err := st.Save("joint", "eye-in-hand-joint", "current", "1.00", 0.04, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}

	if len(series.Velocities[0]) != 2 {
		t.Errorf("expected 2 velocity columns, got %d", len(series.Velocities[0]))
	}

	if len(series.Errors[0]) != 5 {
		t.Errorf("expected 5 error columns, got %d", len(series.Errors[0]))
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("point", "eye-in-hand-camera", "current", "0.50", 0.1, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreUniqueRunIDs(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	first, err := st.Save("point", "eye-in-hand-camera", "current", "0.50", 0.1, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	second, err := st.Save("point", "eye-in-hand-camera", "current", "0.50", 0.1, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if first == second {
		t.Errorf("expected distinct run ids, got %q twice", first)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("point", "eye-in-hand-camera", "current", "0.50", 0.1, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	metaPath := filepath.Join(runDir, "metadata.json")
	csvPath := filepath.Join(runDir, "iterations.csv")

	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	if _, err := os.Stat(csvPath); os.IsNotExist(err) {
		t.Error("iterations.csv not created")
	}
}

func TestStoreEmptyRun(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := &sim.Result{Metrics: map[string]float64{}}

	runID, err := st.Save("point", "eye-in-hand-camera", "current", "0.50", 0.1, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}

	if len(series.Times) != 0 {
		t.Errorf("expected empty series, got %d rows", len(series.Times))
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("pbvs", "eye-in-hand-camera", "current", "adaptive(4.00,0.40,30.00)", 0.1, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, meta, series); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export failed: %v", err)
	}

	var out ExportData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal export failed: %v", err)
	}

	if out.Scenario != "pbvs" {
		t.Errorf("expected scenario 'pbvs', got '%s'", out.Scenario)
	}

	if out.Iterations != 2 {
		t.Errorf("expected 2 iterations, got %d", out.Iterations)
	}

	if len(out.Times) != 2 || len(out.Velocities) != 2 || len(out.Norms) != 2 {
		t.Errorf("expected 2 rows in exported series, got %d/%d/%d",
			len(out.Times), len(out.Velocities), len(out.Norms))
	}

	if !out.Converged {
		t.Error("expected converged flag preserved")
	}
}
