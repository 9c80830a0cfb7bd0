// Command inspect builds a configuration from a dataset without rendering
// anything and prints a phased diagnostic report: coordinates, measures,
// the marker color discriminator, tooltip columns and override keys.
//
// Usage:
//
//	go run ./cmd/inspect -input sites.xlsx [-sheet Buildings] [-overrides overrides.json] [-strict]
//
// The exit status is 1 when no row has usable coordinates, or with -strict
// when any phase reports findings.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/site-heatmap/internal/adapter/dataset"
	"github.com/couchcryptid/site-heatmap/internal/config"
	"github.com/couchcryptid/site-heatmap/internal/domain"
)

func main() {
	input := flag.String("input", "", "dataset path (.csv or .xlsx)")
	sheet := flag.String("sheet", "", "XLSX sheet name (default: first sheet)")
	overrides := flag.String("overrides", "", "JSON overrides file")
	strict := flag.Bool("strict", false, "exit 1 when any phase has findings")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *input, *sheet, *overrides, *strict); code != 0 {
		os.Exit(code)
	}
}

func run(w io.Writer, input, sheet, overridesPath string, strict bool) int {
	fmt.Fprintln(w, "=== Site Heatmap Dataset Inspection ===")
	fmt.Fprintln(w)

	src, err := dataset.NewSource(input, sheet)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}
	ds, err := src.Extract(context.Background())
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}
	ov, err := config.LoadOverrides(overridesPath)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}

	cfg, err := domain.Build(ds, ov)
	var dataErr *domain.DataError
	if errors.As(err, &dataErr) {
		fmt.Fprintf(w, "FATAL: %v\n", dataErr)
		return 1
	}
	if err != nil {
		fmt.Fprintf(w, "FATAL: build configuration: %v\n", err)
		return 1
	}

	phases := []*phase{
		inspectCoordinates(cfg),
		inspectMeasures(cfg),
		inspectDiscriminator(cfg),
		inspectTooltips(cfg, ds.Columns),
		inspectOverrides(cfg),
	}

	if !report(w, cfg, phases) && strict {
		return 1
	}
	return 0
}
