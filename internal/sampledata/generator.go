// Package sampledata generates synthetic plant CSV files for local runs and
// tests. The output deliberately carries the kinds of noise the cleaning
// pipeline exists for: metadata rows, thousands separators, percent suffixes,
// lowercase state codes, and duplicate rows.
package sampledata

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Default generation constants.
const (
	defaultPlantCount = 100
	defaultSeed       = 42

	maxGenerationMWh  = 20_000_000.0
	maxCapacityMW     = 4_000.0
	maxEmissionsTons  = 15_000_000.0
	noiseRowInterval  = 25 // one metadata row about every N plants
	duplicateInterval = 40 // one duplicated plant about every N plants
)

var states = []string{
	"AL", "AZ", "CA", "CO", "FL", "GA", "IL", "NY", "OH", "PA",
	"TX", "WA", "WV", "WY",
}

var nameParts = []string{
	"Cedar", "Granite", "Harbor", "Mesa", "Prairie", "Ridge", "River",
	"Sierra", "Summit", "Valley",
}

var nameSuffixes = []string{
	"Generating Station", "Power Plant", "Energy Center", "Station Unit 1",
}

// Options control sample generation.
type Options struct {
	// PlantCount is the number of real plant rows to emit.
	PlantCount int
	// Seed fixes the random source so output is reproducible.
	Seed int64
	// Noise toggles metadata rows, duplicates, and formatting quirks.
	Noise bool
}

// Option applies a configuration option.
type Option func(*Options)

// WithPlantCount sets the number of plant rows.
func WithPlantCount(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.PlantCount = n
		}
	}
}

// WithSeed sets the random seed.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithNoise toggles the dirty-data artifacts.
func WithNoise(enabled bool) Option {
	return func(o *Options) {
		o.Noise = enabled
	}
}

// Header is the column layout of generated files, matching the service's
// default configuration.
var Header = []string{
	"plant_id",
	"plant_name",
	"state",
	"annual_net_generation_mwh",
	"nameplate_capacity_mw",
	"capacity_factor_percent",
	"annual_co2_emissions_tons",
}

// Write emits a synthetic plant CSV to w.
func Write(w io.Writer, opts ...Option) error {
	o := &Options{PlantCount: defaultPlantCount, Seed: defaultSeed, Noise: true}
	for _, opt := range opts {
		opt(o)
	}

	rng := rand.New(rand.NewSource(o.Seed))
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	var prev []string
	for i := 0; i < o.PlantCount; i++ {
		if o.Noise && i > 0 && i%noiseRowInterval == 0 {
			if err := cw.Write(metadataRow(rng)); err != nil {
				return fmt.Errorf("write metadata row: %w", err)
			}
		}

		row := plantRow(rng, o.Noise)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}

		if o.Noise && prev != nil && i%duplicateInterval == 0 {
			if err := cw.Write(prev); err != nil {
				return fmt.Errorf("write duplicate row: %w", err)
			}
		}
		prev = row
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// WriteFile emits a synthetic plant CSV to path.
func WriteFile(path string, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, opts...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func plantRow(rng *rand.Rand, noise bool) []string {
	name := fmt.Sprintf("%s %s",
		nameParts[rng.Intn(len(nameParts))],
		nameSuffixes[rng.Intn(len(nameSuffixes))],
	)
	state := states[rng.Intn(len(states))]
	if noise && rng.Intn(4) == 0 {
		state = strings.ToLower(state)
	}

	gen := rng.Float64() * maxGenerationMWh
	capacity := rng.Float64() * maxCapacityMW
	factor := rng.Float64() * 100
	co2 := rng.Float64() * maxEmissionsTons

	genStr := fmt.Sprintf("%.1f", gen)
	if noise && rng.Intn(2) == 0 {
		genStr = withThousandsSeparators(gen)
	}
	factorStr := fmt.Sprintf("%.1f", factor)
	if noise && rng.Intn(2) == 0 {
		factorStr += "%"
	}

	return []string{
		uuid.NewString(),
		name,
		state,
		genStr,
		fmt.Sprintf("%.1f", capacity),
		factorStr,
		fmt.Sprintf("%.1f", co2),
	}
}

func metadataRow(rng *rand.Rand) []string {
	markers := []string{"TOTAL", "SUBTOTAL", ""}
	marker := markers[rng.Intn(len(markers))]
	return []string{"", marker, "", "", "", "", ""}
}

// withThousandsSeparators formats v with commas, e.g. 1234567.8 -> "1,234,567.8".
func withThousandsSeparators(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String() + frac
}
