package storage

import (
	"io"

	"github.com/san-kum/mdsim/internal/md"
)

type ExportData struct {
	Run     RunMetadata `json:"run"`
	Samples []Record    `json:"samples"`
}

type Record struct {
	Step        int     `json:"step"`
	Time        float64 `json:"time"`
	Kinetic     float64 `json:"kinetic"`
	Potential   float64 `json:"potential"`
	Total       float64 `json:"total"`
	Temperature float64 `json:"temperature"`
}

// ExportJSON writes the run metadata and its samples as one indented
// document.
func ExportJSON(w io.Writer, meta RunMetadata, samples []md.Sample) error {
	data := ExportData{Run: meta, Samples: make([]Record, len(samples))}
	for i, s := range samples {
		data.Samples[i] = Record{
			Step:        s.Step,
			Time:        s.Time,
			Kinetic:     s.Kinetic,
			Potential:   s.Potential,
			Total:       s.Total(),
			Temperature: s.Temperature,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
