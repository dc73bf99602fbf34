package main

import (
	"io"

	"github.com/fatih/color"
	"github.com/mahdiidarabi/xonly-vanity/pkg/vanity"
)

var (
	colorTiming    = color.New(color.FgCyan, color.Bold)
	colorRate      = color.New(color.FgGreen)
	colorProjected = color.New(color.FgYellow)
)

func printBenchmarkReport(w io.Writer, r *vanity.BenchmarkReport) {
	colorTiming.Fprintf(w, "Time for generation: %dµs (%d/%d)\n",
		r.AvgGeneration.Microseconds(), r.TotalGeneration.Microseconds(), r.Samples)
	colorRate.Fprintf(w, "\t%.0f h/s\n", r.Throughput)
	colorProjected.Fprintf(w, "\t\t%.0f h/s on %d cores\n", r.ProjectedThroughput, r.ProjectedCores)
	colorTiming.Fprintf(w, "Time for filtering: %dµs (%d/%d)\n",
		r.AvgFiltering.Microseconds(), r.TotalFiltering.Microseconds(), r.Samples)
}
