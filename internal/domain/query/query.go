// Package query answers the supported query shapes against an immutable
// dataset. Every operation is a pure, single-pass function of the dataset and
// its parameters; nothing here mutates shared state, so all operations are
// safe under unbounded concurrent reads.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gridlens/gridlens/internal/domain/record"
)

// TopPlants returns up to n plants ordered by metric descending. Ties keep
// the original dataset order (stable sort), so results are reproducible.
// An n larger than the dataset returns the full sorted dataset.
func TopPlants(ds *record.Dataset, n int, metric string) ([]record.Plant, error) {
	if n <= 0 {
		return nil, fmt.Errorf("top limit %d: %w", n, ErrInvalidLimit)
	}
	if !ds.ValidMetric(metric) {
		return nil, fmt.Errorf("metric %q: %w", metric, ErrBadMetric)
	}

	sorted := append([]record.Plant(nil), ds.Plants()...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Metrics[metric] > sorted[j].Metrics[metric]
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n], nil
}

// StatesInfo aggregates metric over all plants, grouped by state. The
// aggregation rule is a sum for every metric; Share reports each state's
// fraction of the national total. States with no plants are omitted.
func StatesInfo(ds *record.Dataset, metric string) (map[string]record.StateSummary, error) {
	if !ds.ValidMetric(metric) {
		return nil, fmt.Errorf("metric %q: %w", metric, ErrBadMetric)
	}

	totals := make(map[string]*record.StateSummary)
	var national float64
	for _, p := range ds.Plants() {
		v := p.Metrics[metric]
		s, ok := totals[p.State]
		if !ok {
			s = &record.StateSummary{State: p.State, Metric: metric}
			totals[p.State] = s
		}
		s.Total += v
		s.PlantCount++
		national += v
	}

	out := make(map[string]record.StateSummary, len(totals))
	for state, s := range totals {
		if national != 0 {
			s.Share = s.Total / national
		}
		out[state] = *s
	}
	return out, nil
}

// StateDetail returns all plants of a state in original dataset order. The
// code is canonicalized before validation; a code outside the valid set fails
// with ErrUnknownState, while a valid state with no plants returns an empty
// slice.
func StateDetail(ds *record.Dataset, state string) ([]record.Plant, error) {
	normalized := strings.ToUpper(strings.TrimSpace(state))
	if !ds.ValidState(normalized) {
		return nil, fmt.Errorf("state %q: %w", state, ErrUnknownState)
	}

	out := make([]record.Plant, 0)
	for _, p := range ds.Plants() {
		if p.State == normalized {
			out = append(out, p)
		}
	}
	return out, nil
}
