package main

import (
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/couchcryptid/site-heatmap/internal/domain"
	"github.com/couchcryptid/site-heatmap/internal/heatmap"
)

// maxListed caps the findings printed per phase.
const maxListed = 20

// phase tracks the findings of one inspection phase.
type phase struct {
	name     string
	findings []string
}

func (p *phase) findf(format string, args ...any) {
	p.findings = append(p.findings, fmt.Sprintf(format, args...))
}

func (p *phase) clean() bool { return len(p.findings) == 0 }

// ── Phase 1: Coordinates ──

func inspectCoordinates(cfg *domain.Configuration) *phase {
	p := &phase{name: "Phase 1: Coordinates"}
	for _, r := range cfg.Rows() {
		if _, _, ok := r.Coordinates(); ok {
			continue
		}
		lat, _ := r.Display(cfg.LatField())
		long, _ := r.Display(cfg.LongField())
		p.findf("row %s: no usable coordinates (%s=%q, %s=%q), excluded from map",
			r.Key(), cfg.LatField(), lat, cfg.LongField(), long)
	}
	return p
}

// ── Phase 2: Measures ──

func inspectMeasures(cfg *domain.Configuration) *phase {
	p := &phase{name: "Phase 2: Measures"}
	located := cfg.Summary().Located
	for _, layer := range heatmap.BuildLayers(cfg, cfg.Rows()) {
		if missing := located - len(layer.Points); missing > 0 {
			p.findf("layer %q: %d of %d located rows have no usable weight", layer.Name, missing, located)
		}
		if len(layer.Points) == 0 {
			p.findf("layer %q is empty", layer.Name)
		}
	}
	return p
}

// ── Phase 3: Marker discriminator ──

func inspectDiscriminator(cfg *domain.Configuration) *phase {
	p := &phase{name: "Phase 3: Marker Color Discriminator"}
	for _, r := range cfg.Rows() {
		if _, _, ok := r.Coordinates(); !ok {
			continue
		}
		if heatmap.MarkerColorFor(r, cfg.ColorField()) != heatmap.MarkerGray {
			continue
		}
		v, _ := r.Display(cfg.ColorField())
		p.findf("row %s: %s=%q is not an integer, pin drawn gray", r.Key(), cfg.ColorField(), v)
	}
	return p
}

// ── Phase 4: Tooltip columns ──

func inspectTooltips(cfg *domain.Configuration, columns []string) *phase {
	p := &phase{name: "Phase 4: Tooltip Columns"}
	if len(columns) == 0 {
		return p
	}
	for _, f := range cfg.TooltipFields() {
		if !slices.Contains(columns, f.Column) {
			p.findf("tooltip %q: column %q not in dataset", f.Label, f.Column)
		}
	}
	for _, c := range []string{domain.TrailerLeft, domain.TrailerRight} {
		if !slices.Contains(columns, c) {
			p.findf("trailer column %q not in dataset", c)
		}
	}
	return p
}

// ── Phase 5: Overrides ──

func inspectOverrides(cfg *domain.Configuration) *phase {
	p := &phase{name: "Phase 5: Overrides"}
	for _, w := range cfg.Summary().Warnings {
		p.findf("%s", w)
	}
	ext := cfg.Extensions()
	keys := make([]string, 0, len(ext))
	for k := range ext {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p.findf("unrecognized key %q kept as an extension", k)
	}
	return p
}

// report prints the phase table and details. It returns true when every
// phase is clean.
func report(w io.Writer, cfg *domain.Configuration, phases []*phase) bool {
	allClean := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.clean() {
			status = fmt.Sprintf("\033[33mWARN (%d findings)\033[0m", len(p.findings))
			allClean = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	s := cfg.Summary()
	lat, long := cfg.Center()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Rows: %d total, %d located, %d unlocated\n", s.Rows, s.Located, s.Unlocated())
	fmt.Fprintf(w, "Center: %.4f, %.4f  Extent: %.0f km  Zoom: %d\n", lat, long, s.ExtentKm(), cfg.ZoomStart())
	fmt.Fprintf(w, "Default layer: %s\n", cfg.DefaultMeasure())

	for _, p := range phases {
		if p.clean() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, f := range p.findings {
			if i == maxListed {
				fmt.Fprintf(w, "  ... %d more\n", len(p.findings)-maxListed)
				break
			}
			fmt.Fprintf(w, "  [%d] %s\n", i+1, f)
		}
	}

	if allClean {
		fmt.Fprintln(w, "\nAll checks passed.")
	}
	return allClean
}
