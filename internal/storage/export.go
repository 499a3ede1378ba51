package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Mode        string             `json:"mode"`
	Interaction string             `json:"interaction"`
	Gain        string             `json:"gain"`
	Dt          float64            `json:"dt"`
	Iterations  int                `json:"iterations"`
	Converged   bool               `json:"converged"`
	FinalError  float64            `json:"final_error"`
	Times       []float64          `json:"times"`
	Velocities  [][]float64        `json:"velocities"`
	Errors      [][]float64        `json:"errors"`
	Norms       []float64          `json:"error_norms"`
	Metrics     map[string]float64 `json:"metrics"`
}

func exportData(meta *RunMetadata, series *Series) ExportData {
	return ExportData{
		ID:          meta.ID,
		Scenario:    meta.Scenario,
		Mode:        meta.Mode,
		Interaction: meta.Interaction,
		Gain:        meta.Gain,
		Dt:          meta.Dt,
		Iterations:  meta.Iterations,
		Converged:   meta.Converged,
		FinalError:  meta.FinalError,
		Times:       series.Times,
		Velocities:  series.Velocities,
		Errors:      series.Errors,
		Norms:       series.Norms,
		Metrics:     meta.Metrics,
	}
}

func ExportJSON(path string, meta *RunMetadata, series *Series) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeExport(file, meta, series)
}

func ExportJSONStdout(meta *RunMetadata, series *Series) error {
	return writeExport(os.Stdout, meta, series)
}

func writeExport(w io.Writer, meta *RunMetadata, series *Series) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(meta, series))
}
