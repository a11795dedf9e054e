package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/dynfilter/dynamo"
	"github.com/san-kum/dynfilter/internal/sim"
)

var csvHeader = []string{"time", "target", "value", "rate", "mode"}

// WriteCSV writes one row per frame.
func WriteCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for i := range result.Times {
		s := result.Sample(i)
		row := []string{
			strconv.FormatFloat(s.Time, 'f', 6, 64),
			strconv.FormatFloat(s.Target, 'f', 6, 64),
			strconv.FormatFloat(s.Value, 'f', 6, 64),
			strconv.FormatFloat(s.Rate, 'f', 6, 64),
			s.Mode.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the output of WriteCSV.
func ReadCSV(r io.Reader) (*sim.Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	result := &sim.Result{Metrics: make(map[string]float64)}
	if len(records) < 2 {
		return result, nil
	}

	for i, record := range records[1:] {
		var vals [4]float64
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %s: %w", i+1, csvHeader[j], err)
			}
			vals[j] = v
		}
		result.Times = append(result.Times, vals[0])
		result.Targets = append(result.Targets, vals[1])
		result.Values = append(result.Values, vals[2])
		result.Rates = append(result.Rates, vals[3])
		result.Modes = append(result.Modes, parseMode(record[4]))
	}
	return result, nil
}

func parseMode(s string) dynamo.Mode {
	if s == dynamo.ModePoleMatched.String() {
		return dynamo.ModePoleMatched
	}
	return dynamo.ModeClamped
}

// ExportData is the JSON form of a run.
type ExportData struct {
	Params   dynamo.Params      `json:"params"`
	Signal   string             `json:"signal"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	Targets  []float64          `json:"targets"`
	Values   []float64          `json:"values"`
	Rates    []float64          `json:"rates,omitempty"`
	Modes    []string           `json:"modes,omitempty"`
	Metrics  map[string]float64 `json:"metrics"`
}

func NewExportData(p dynamo.Params, signal string, dt, duration float64, result *sim.Result) ExportData {
	data := ExportData{
		Params:   p,
		Signal:   signal,
		Dt:       dt,
		Duration: duration,
		Steps:    result.StepsTaken,
		Times:    result.Times,
		Targets:  result.Targets,
		Values:   result.Values,
		Rates:    result.Rates,
		Metrics:  result.Metrics,
	}
	if len(result.Modes) > 0 {
		data.Modes = make([]string, len(result.Modes))
		for i, m := range result.Modes {
			data.Modes[i] = m.String()
		}
	}
	return data
}

func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
