// Command sample-data writes a synthetic plant CSV for local runs.
package main

import (
	"flag"
	"os"

	"github.com/gridlens/gridlens/internal/sampledata"
)

// Default generation constants.
const (
	defaultOutput = "data/plants.csv"
	defaultCount  = 100
	defaultSeed   = 42
)

func main() {
	var (
		output = flag.String("output", defaultOutput, "Path of the CSV file to write")
		count  = flag.Int("plants", defaultCount, "Number of plant rows to generate")
		seed   = flag.Int64("seed", defaultSeed, "Random seed for reproducible output")
		clean  = flag.Bool("clean", false, "Emit clean rows without dirty-data noise")
	)
	flag.Parse()

	err := sampledata.WriteFile(*output,
		sampledata.WithPlantCount(*count),
		sampledata.WithSeed(*seed),
		sampledata.WithNoise(!*clean),
	)
	if err != nil {
		os.Stderr.WriteString("failed to write sample data: " + err.Error() + "\n")
		os.Exit(1)
	}
	os.Stdout.WriteString("wrote " + *output + "\n")
}
