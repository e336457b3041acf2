package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	ID      string      `json:"id"`
	Mixture string      `json:"mixture"`
	Species []string    `json:"species"`
	Columns []string    `json:"columns"`
	States  [][]float64 `json:"states"`
}

func ExportJSON(w io.Writer, meta *Metadata, states [][]float64) error {
	data := ExportData{
		ID:      meta.ID,
		Mixture: meta.Mixture,
		Species: meta.Species,
		Columns: Header(meta.Species),
		States:  states,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
