// internal/export/export.go
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"flowfit/coach-app/internal/domain"
)

// File is a rendered plan export ready for storage.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// PlanExporter renders a plan into a downloadable file. It reads the plan
// only; exporting never mutates or persists anything. The PDF renderer
// used by the product implements this interface outside this module.
type PlanExporter interface {
	Export(plan *domain.Plan, clientName string) (*File, error)
}

// JSONExporter is the built-in exporter: the full plan document in the wire
// shape, one object per day keyed by weekday name.
type JSONExporter struct{}

type exportedDay struct {
	Name    string         `json:"nome"`
	Entries []domain.Entry `json:"esercizi"`
}

type exportedPlan struct {
	ClientName    string                 `json:"cliente"`
	Goal          string                 `json:"obiettivo"`
	Level         string                 `json:"livello"`
	DurationWeeks int                    `json:"durataSettimane,omitempty"`
	Notes         string                 `json:"note"`
	Days          map[string]exportedDay `json:"giorni"`
	ExportedAt    time.Time              `json:"exportedAt"`
}

func (JSONExporter) Export(plan *domain.Plan, clientName string) (*File, error) {
	now := time.Now().UTC()

	doc := exportedPlan{
		ClientName:    clientName,
		Goal:          plan.Goal,
		Level:         plan.Level,
		DurationWeeks: plan.DurationWeeks,
		Notes:         plan.Notes,
		Days:          make(map[string]exportedDay, domain.DaysPerWeek),
		ExportedAt:    now,
	}
	for _, w := range domain.Weekdays() {
		day := plan.Days[w]
		name := day.DisplayName
		if name == "" {
			name = w.DisplayName()
		}
		entries := day.Entries
		if entries == nil {
			entries = []domain.Entry{}
		}
		doc.Days[w.Key()] = exportedDay{Name: name, Entries: entries}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        fmt.Sprintf("scheda-allenamento-%s.json", now.Format("2006-01-02")),
		ContentType: "application/json",
		Data:        data,
	}, nil
}
