// Command gensample writes a deterministic building dataset in both CSV and
// XLSX form, for demos and for exercising the heatmap command end to end.
// The same -rows and -seed always produce the same files.
//
// Usage:
//
//	go run ./cmd/gensample -out-dir data/sample -rows 40
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/site-heatmap/internal/adapter/dataset"
	"github.com/couchcryptid/site-heatmap/internal/domain"
	"github.com/rs/zerolog/log"
)

// city anchors generated buildings.
type city struct {
	name   string
	region string
	lat    float64
	long   float64
}

var cities = []city{
	{"Washington", "East", 38.9072, -77.0369},
	{"New York", "East", 40.7128, -74.0060},
	{"Atlanta", "South", 33.7490, -84.3880},
	{"Dallas", "South", 32.7767, -96.7970},
	{"Chicago", "Central", 41.8781, -87.6298},
	{"Denver", "Central", 39.7392, -104.9903},
	{"Seattle", "West", 47.6062, -122.3321},
	{"Los Angeles", "West", 34.0549, -118.2426},
}

var columns = []string{
	"Bldg_Name", "Address", "Region", "Lat", "Long",
	"Staff_Count", "Ticket_Volume", "Call_Volume",
	"Internal_Staff", "Group1_Staff", "Group2_Staff", "Group1", "Group2",
}

var groups = []string{"Facilities", "Operations", "Security", "Support"}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("gensample failed")
	}
}

func run() error {
	outDir := flag.String("out-dir", ".", "directory to write sites.csv and sites.xlsx into")
	rows := flag.Int("rows", 40, "number of buildings")
	seed := flag.Uint64("seed", 42, "random seed")
	sheet := flag.String("sheet", "Buildings", "XLSX sheet name")
	flag.Parse()

	if *rows <= 0 {
		flag.Usage()
		return fmt.Errorf("-rows must be positive, got %d", *rows)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	ds := generate(*rows, *seed)

	csvPath := filepath.Join(*outDir, "sites.csv")
	if err := dataset.WriteCSV(csvPath, ds); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	log.Info().Str("path", csvPath).Int("rows", len(ds.Rows)).Msg("wrote csv")

	xlsxPath := filepath.Join(*outDir, "sites.xlsx")
	if err := dataset.WriteXLSX(xlsxPath, *sheet, ds); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	log.Info().Str("path", xlsxPath).Str("sheet", *sheet).Msg("wrote xlsx")

	return printStats(ds)
}

// generate builds n buildings scattered around the anchor cities. Every
// tenth building has no coordinates and every seventh an unparseable ticket
// volume, so the sample exercises the missing-value paths.
func generate(n int, seed uint64) domain.Dataset {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	ds := domain.Dataset{Columns: columns, Rows: make([]domain.RawRow, 0, n)}

	for i := range n {
		c := cities[i%len(cities)]
		staff := int(math.Round(math.Exp(rng.Float64()*math.Log(8000)))) + 1
		internal := 0
		if rng.IntN(3) == 0 {
			internal = rng.IntN(staff/10 + 1)
		}
		g1 := rng.IntN(staff + 1)

		fields := map[string]any{
			"Bldg_Name":      fmt.Sprintf("%s Site %02d", c.name, i/len(cities)+1),
			"Address":        fmt.Sprintf("%d %s Ave", 100+rng.IntN(9000), c.name),
			"Region":         c.region,
			"Lat":            round4(c.lat + rng.NormFloat64()*0.15),
			"Long":           round4(c.long + rng.NormFloat64()*0.15),
			"Staff_Count":    staff,
			"Ticket_Volume":  staff/8 + rng.IntN(50),
			"Call_Volume":    staff/20 + rng.IntN(20),
			"Internal_Staff": internal,
			"Group1_Staff":   g1,
			"Group2_Staff":   staff - g1,
			"Group1":         groups[rng.IntN(len(groups))],
			"Group2":         groups[rng.IntN(len(groups))],
		}
		if i%10 == 9 {
			delete(fields, "Lat")
			delete(fields, "Long")
		}
		if i%7 == 6 {
			fields["Ticket_Volume"] = "pending"
		}

		ds.Rows = append(ds.Rows, domain.RawRow{Key: strconv.Itoa(i), Fields: fields})
	}
	return ds
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// printStats builds the sample once so the printed counts match what the
// heatmap command will report.
func printStats(ds domain.Dataset) error {
	cfg, err := domain.Build(ds, nil)
	if err != nil {
		return fmt.Errorf("build sample: %w", err)
	}
	s := cfg.Summary()
	lat, long := cfg.Center()

	fmt.Println("\n=== Sample stats ===")
	fmt.Printf("Rows: %d (located %d, unlocated %d)\n", s.Rows, s.Located, s.Unlocated())
	fmt.Printf("Center: %.4f, %.4f\n", lat, long)
	fmt.Printf("Extent: %.0f km\n", s.ExtentKm())
	for _, m := range s.Measures {
		fmt.Printf("%-14s valid=%d missing=%d range=[%g, %g]\n", m.Field, m.Valid, m.Missing, m.Min, m.Max)
	}
	return nil
}
