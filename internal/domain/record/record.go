// Package record contains the canonical dataset types used across the application.
package record

// RawRow is a single row as read from the tabular source, keyed by the
// source's header names. Every value is an untyped string; cleaning decides
// what survives and in what shape.
type RawRow map[string]string

// Plant is a cleaned, fully typed power-plant entry.
//
// Invariants established by the cleaning pipeline:
//   - Name is non-empty and not a metadata sentinel.
//   - State is a valid two-letter code, uppercase.
//   - Metrics holds a finite float64 for every configured metric name.
//     Percent metrics are stored as fractions in [0, 1].
type Plant struct {
	Name    string             `json:"name"`
	State   string             `json:"state"`
	Metrics map[string]float64 `json:"metrics"`
}

// Metric returns the value of a named metric and whether it is present.
func (p Plant) Metric(name string) (float64, bool) {
	v, ok := p.Metrics[name]
	return v, ok
}

// StateSummary aggregates one metric across all plants of a state.
type StateSummary struct {
	State      string  `json:"state"`
	Metric     string  `json:"metric"`
	Total      float64 `json:"total"`
	PlantCount int     `json:"plant_count"`
	// Share is the state's fraction of the national total for the metric,
	// in [0, 1]. Zero when the national total is zero.
	Share float64 `json:"share"`
}

// Dataset is an immutable, ordered collection of plants together with the
// fixed sets of valid metric names and state codes it was loaded under.
// It is safe for unbounded concurrent reads; nothing mutates it after New.
type Dataset struct {
	plants  []Plant
	metrics map[string]struct{}
	states  map[string]struct{}
}

// New builds a Dataset from cleaned plants and the configured valid sets.
// The plants slice is owned by the Dataset after the call.
func New(plants []Plant, metrics []string, states []string) *Dataset {
	d := &Dataset{
		plants:  plants,
		metrics: make(map[string]struct{}, len(metrics)),
		states:  make(map[string]struct{}, len(states)),
	}
	for _, m := range metrics {
		d.metrics[m] = struct{}{}
	}
	for _, s := range states {
		d.states[s] = struct{}{}
	}
	return d
}

// Len returns the number of plants in the dataset.
func (d *Dataset) Len() int {
	return len(d.plants)
}

// Plants returns the plants in original load order. Callers must treat the
// returned slice as read-only.
func (d *Dataset) Plants() []Plant {
	return d.plants
}

// ValidMetric reports whether name is one of the configured metric names.
func (d *Dataset) ValidMetric(name string) bool {
	_, ok := d.metrics[name]
	return ok
}

// ValidState reports whether code is one of the configured state codes.
func (d *Dataset) ValidState(code string) bool {
	_, ok := d.states[code]
	return ok
}
