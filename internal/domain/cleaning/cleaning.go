// Package cleaning turns raw source rows into canonical plant records.
//
// The pipeline is an ordered sequence of pure steps, each total over its
// input: drop metadata rows, normalize percent fields, normalize numeric
// fields, normalize state codes, and finally drop exact duplicates. A
// malformed row is dropped and counted, never fatal; only an empty result
// surfaces as an error.
package cleaning

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gridlens/gridlens/internal/domain/record"
)

// Default sentinel values that mark a row as metadata rather than plant data.
var defaultSentinels = []string{"TOTAL", "SUBTOTAL", "N/A", "--"}

// Report counts what happened to the input rows during one pipeline run.
type Report struct {
	Input            int
	Kept             int
	DroppedMetadata  int
	DroppedNumeric   int
	DroppedState     int
	DroppedDuplicate int
}

// Pipeline holds the configuration shared by all cleaning steps.
type Pipeline struct {
	nameField   string
	stateField  string
	metrics     []string
	validStates map[string]struct{}
	sentinels   map[string]struct{}
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithSentinels replaces the default metadata sentinel values.
func WithSentinels(sentinels []string) Option {
	return func(p *Pipeline) {
		if len(sentinels) == 0 {
			return
		}
		p.sentinels = make(map[string]struct{}, len(sentinels))
		for _, s := range sentinels {
			p.sentinels[strings.ToUpper(s)] = struct{}{}
		}
	}
}

// New constructs a Pipeline. nameField and stateField name the source columns
// holding the plant identifier and state code; metrics lists the required
// numeric columns; validStates is the fixed set of accepted state codes.
func New(nameField, stateField string, metrics []string, validStates []string, opts ...Option) *Pipeline {
	p := &Pipeline{
		nameField:   nameField,
		stateField:  stateField,
		metrics:     append([]string(nil), metrics...),
		validStates: make(map[string]struct{}, len(validStates)),
		sentinels:   make(map[string]struct{}, len(defaultSentinels)),
	}
	for _, s := range validStates {
		p.validStates[s] = struct{}{}
	}
	for _, s := range defaultSentinels {
		p.sentinels[s] = struct{}{}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run applies the pipeline to rows in order. It is deterministic: the same
// input always yields the same records in the same order. Returns
// ErrEmptyDataset when nothing survives.
func (p *Pipeline) Run(rows []record.RawRow) ([]record.Plant, Report, error) {
	rep := Report{Input: len(rows)}
	plants := make([]record.Plant, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		name := strings.TrimSpace(row[p.nameField])
		if IsMetadataRow(name, p.sentinels, p.nameField) {
			rep.DroppedMetadata++
			continue
		}

		metrics, ok := p.normalizeMetrics(row)
		if !ok {
			rep.DroppedNumeric++
			continue
		}

		state := NormalizeState(row[p.stateField])
		if _, valid := p.validStates[state]; !valid {
			rep.DroppedState++
			continue
		}

		plant := record.Plant{Name: name, State: state, Metrics: metrics}
		key := fingerprint(plant, p.metrics)
		if _, dup := seen[key]; dup {
			rep.DroppedDuplicate++
			continue
		}
		seen[key] = struct{}{}
		plants = append(plants, plant)
	}

	rep.Kept = len(plants)
	if rep.Kept == 0 {
		return nil, rep, fmt.Errorf("cleaned %d rows: %w", rep.Input, ErrEmptyDataset)
	}
	return plants, rep, nil
}

// normalizeMetrics parses every required metric column of a row. A single
// unparseable value fails the whole row.
func (p *Pipeline) normalizeMetrics(row record.RawRow) (map[string]float64, bool) {
	out := make(map[string]float64, len(p.metrics))
	for _, m := range p.metrics {
		raw := row[m]
		var (
			v   float64
			err error
		)
		if IsPercentField(m, raw) {
			v, err = NormalizePercent(raw)
		} else {
			v, err = NormalizeNumber(raw)
		}
		if err != nil {
			return nil, false
		}
		out[m] = v
	}
	return out, true
}

// IsMetadataRow reports whether a row is a header repeat, footnote, or other
// non-data artifact. A row is metadata when its identifier is empty, equals
// the identifier column name (a repeated header), or is a known sentinel.
func IsMetadataRow(name string, sentinels map[string]struct{}, nameField string) bool {
	if name == "" {
		return true
	}
	if strings.EqualFold(name, nameField) {
		return true
	}
	_, sentinel := sentinels[strings.ToUpper(name)]
	return sentinel
}

// IsPercentField reports whether a metric column holds percentage values:
// either its name says so or the raw value carries a "%" suffix.
func IsPercentField(name, raw string) bool {
	if strings.Contains(strings.ToLower(name), "percent") {
		return true
	}
	return strings.HasSuffix(strings.TrimSpace(raw), "%")
}

// NormalizePercent parses a percentage value such as "12.5%" or "12.5" into
// a fraction: 12.5 becomes 0.125. The fraction representation is the output
// invariant for all percent metrics.
func NormalizePercent(raw string) (float64, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(raw), "%")
	v, err := NormalizeNumber(trimmed)
	if err != nil {
		return 0, err
	}
	return v / 100, nil
}

// NormalizeNumber parses a numeric string, tolerating thousands separators
// and surrounding whitespace. Non-finite results are rejected.
func NormalizeNumber(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", raw)
	}
	return v, nil
}

// NormalizeState canonicalizes a state code: trimmed and uppercased.
func NormalizeState(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// fingerprint builds a stable duplicate-detection key from the canonical
// fields of a plant. Metric order is fixed by the configured metric list.
func fingerprint(p record.Plant, metrics []string) string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteByte('|')
	b.WriteString(p.State)
	keys := append([]string(nil), metrics...)
	sort.Strings(keys)
	for _, m := range keys {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(p.Metrics[m], 'g', -1, 64))
	}
	return b.String()
}
