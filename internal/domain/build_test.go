package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDC = "Washington Office"
	testNY = "New York Office"
	testLA = "Los Angeles Office"
)

// scenarioDataset is the three-building dataset used across the package tests.
func scenarioDataset() Dataset {
	return Dataset{
		Columns: []string{"Bldg_Name", "Lat", "Long", "Staff_Count", "Ticket_Volume", "Call_Volume", "Internal_Staff"},
		Rows: []RawRow{
			{Key: "0", Fields: map[string]any{
				"Bldg_Name": testDC, "Lat": "38.9072", "Long": "77.0369",
				"Staff_Count": 5, "Ticket_Volume": 10, "Call_Volume": 3, "Internal_Staff": 0,
			}},
			{Key: "1", Fields: map[string]any{
				"Bldg_Name": testNY, "Lat": "40.7128", "Long": "74.006",
				"Staff_Count": 600, "Ticket_Volume": 250, "Call_Volume": 80, "Internal_Staff": 0,
			}},
			{Key: "2", Fields: map[string]any{
				"Bldg_Name": testLA, "Lat": "34.0549", "Long": "118.2426",
				"Staff_Count": 7000, "Ticket_Volume": 900, "Call_Volume": 400, "Internal_Staff": 12,
			}},
		},
	}
}

func TestBuild_Defaults(t *testing.T) {
	cfg, err := Build(scenarioDataset(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Lat", cfg.LatField())
	assert.Equal(t, "Long", cfg.LongField())
	assert.Equal(t, "Internal_Staff", cfg.ColorField())
	assert.Equal(t, 5, cfg.ZoomStart())
	assert.Equal(t, 1.0, cfg.RadiusMultiplier())
	assert.Equal(t, "Staff Count", cfg.DefaultMeasure())

	wantGroups := []MeasureGroup{
		{Name: "Staff Count", Column: "Staff_Count"},
		{Name: "Ticket Volume", Column: "Ticket_Volume"},
		{Name: "Call Volume", Column: "Call_Volume"},
	}
	if diff := cmp.Diff(wantGroups, cfg.MeasureGroups()); diff != "" {
		t.Errorf("measure groups mismatch (-want +got):\n%s", diff)
	}

	wantTooltips := []TooltipField{
		{Label: "Building Name", Column: "Bldg_Name", Emphasized: true},
		{Label: "Address", Column: "Address"},
		{Label: "Region", Column: "Region"},
		{Label: "Building Staffing", Column: "Staff_Count", Emphasized: true},
		{Label: "Internal Staff", Column: "Internal_Staff"},
		{Label: "Group1 Staff", Column: "Group1_Staff"},
		{Label: "Group2 Staff", Column: "Group2_Staff"},
	}
	if diff := cmp.Diff(wantTooltips, cfg.TooltipFields()); diff != "" {
		t.Errorf("tooltip fields mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_ScenarioCenter(t *testing.T) {
	cfg, err := Build(scenarioDataset(), nil)
	require.NoError(t, err)

	lat, long := cfg.Center()
	assert.InDelta(t, 37.8916, lat, 0.001)
	assert.InDelta(t, 89.7618, long, 0.001)
	assert.Equal(t, 3, cfg.Len())
}

func TestBuild_CoordinateCoercion(t *testing.T) {
	tests := []struct {
		name string
		lat  any
		long any
		ok   bool
	}{
		{"string pair", "38.9", "-77.0", true},
		{"padded strings", " 38.9 ", "\t-77.0", true},
		{"float pair", 38.9, -77.0, true},
		{"int pair", 38, -77, true},
		{"empty latitude", "", "-77.0", false},
		{"text longitude", "38.9", "N/A", false},
		{"nil latitude", nil, "-77.0", false},
		{"NaN longitude", "38.9", "NaN", false},
		{"infinite latitude", "Inf", "-77.0", false},
		{"unsupported type", []byte("38.9"), "-77.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := Dataset{Rows: []RawRow{
				{Key: "anchor", Fields: map[string]any{"Lat": "10", "Long": "20"}},
				{Key: "probe", Fields: map[string]any{"Lat": tt.lat, "Long": tt.long}},
			}}
			cfg, err := Build(ds, nil)
			require.NoError(t, err)

			_, _, ok := cfg.Rows()[1].Coordinates()
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestBuild_MissingCoordinatesExcludedFromCenter(t *testing.T) {
	ds := scenarioDataset()
	ds.Rows = append(ds.Rows, RawRow{Key: "3", Fields: map[string]any{
		"Bldg_Name": "Nowhere", "Lat": "51.5", "Long": "", "Staff_Count": "42",
	}})

	cfg, err := Build(ds, nil)
	require.NoError(t, err)

	lat, long := cfg.Center()
	assert.InDelta(t, 37.8916, lat, 0.001)
	assert.InDelta(t, 89.7618, long, 0.001)

	s := cfg.Summary()
	assert.Equal(t, 4, s.Rows)
	assert.Equal(t, 3, s.Located)
	assert.Equal(t, 1, s.Unlocated())
	assert.Equal(t, 4, s.Lat.Valid, "latitude of the unlocated row still counts")
	assert.Equal(t, 1, s.Long.Missing)

	staff, ok := s.Measure("Staff_Count")
	require.True(t, ok)
	assert.Equal(t, 4, staff.Valid, "measures of unlocated rows still count")
	assert.Equal(t, 5.0, staff.Min)
	assert.Equal(t, 7000.0, staff.Max)
}

func TestBuild_NoCoordinates(t *testing.T) {
	ds := Dataset{Rows: []RawRow{
		{Key: "0", Fields: map[string]any{"Lat": "x", "Long": "1"}},
		{Key: "1", Fields: map[string]any{"Long": "2"}},
	}}

	cfg, err := Build(ds, nil)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, ErrNoCoordinates))

	var dataErr *DataError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, 2, dataErr.Rows)
	assert.Equal(t, "Lat", dataErr.LatField)
}

func TestBuild_EmptyDataset(t *testing.T) {
	_, err := Build(Dataset{}, nil)
	require.ErrorIs(t, err, ErrNoCoordinates)
}

func TestBuild_DefensiveCopy(t *testing.T) {
	ds := scenarioDataset()
	before := ds.Rows[0].Fields["Lat"]

	cfg, err := Build(ds, nil)
	require.NoError(t, err)

	assert.Equal(t, before, ds.Rows[0].Fields["Lat"], "input must not be coerced in place")

	ds.Rows[0].Fields["Bldg_Name"] = "Renamed"
	name, ok := cfg.Rows()[0].Display("Bldg_Name")
	require.True(t, ok)
	assert.Equal(t, testDC, name, "configuration must not alias caller maps")
}

func TestBuild_MeasureCoercion(t *testing.T) {
	ds := Dataset{Rows: []RawRow{
		{Key: "0", Fields: map[string]any{"Lat": "1", "Long": "2", "Staff_Count": "12", "Ticket_Volume": "lots"}},
	}}
	cfg, err := Build(ds, nil)
	require.NoError(t, err)

	row := cfg.Rows()[0]
	v, ok := row.Number("Staff_Count")
	assert.True(t, ok)
	assert.Equal(t, 12.0, v)

	_, ok = row.Number("Ticket_Volume")
	assert.False(t, ok)
	_, ok = row.Number("Call_Volume")
	assert.False(t, ok, "absent measure is not an error")

	text, ok := row.Display("Ticket_Volume")
	assert.True(t, ok)
	assert.Equal(t, "lots", text)
}

func TestBuild_MergeMeasureCols(t *testing.T) {
	ov := &Overrides{MeasureCols: FieldList{{Label: "Revenue", Column: "Revenue_Column"}}}

	cfg, err := Build(scenarioDataset(), ov)
	require.NoError(t, err)

	groups := cfg.MeasureGroups()
	require.Len(t, groups, 4)
	assert.Equal(t, "Staff Count", groups[0].Name)
	assert.Equal(t, MeasureGroup{Name: "Revenue", Column: "Revenue_Column"}, groups[3])
}

func TestBuild_MergeReplacesExistingLabelInPlace(t *testing.T) {
	ov := &Overrides{
		MeasureCols: FieldList{{Label: "Ticket Volume", Column: "SP&I"}},
		TooltipCols: FieldList{{Label: "Address", Column: "Street"}, {Label: "Manager", Column: "Mgr"}},
	}

	cfg, err := Build(scenarioDataset(), ov)
	require.NoError(t, err)

	groups := cfg.MeasureGroups()
	require.Len(t, groups, 3)
	assert.Equal(t, MeasureGroup{Name: "Ticket Volume", Column: "SP&I"}, groups[1])

	tips := cfg.TooltipFields()
	require.Len(t, tips, 8)
	assert.Equal(t, "Street", tips[1].Column)
	assert.Equal(t, "Manager", tips[7].Label)
}

func TestBuild_ScalarOverrides(t *testing.T) {
	ov := &Overrides{
		SettingsOverride: SettingsOverride{
			LatField:         ptr("Latitude"),
			LongField:        ptr("Longitude"),
			DefaultMeasure:   ptr("Call Volume"),
			ColorField:       ptr("Staffed"),
			ZoomStart:        ptr(9),
			RadiusMultiplier: ptr(2.5),
		},
		BoldLabels: []string{"Region"},
	}
	ds := Dataset{Rows: []RawRow{
		{Key: "0", Fields: map[string]any{"Latitude": "1", "Longitude": "2"}},
	}}

	cfg, err := Build(ds, ov)
	require.NoError(t, err)

	assert.Equal(t, "Latitude", cfg.LatField())
	assert.Equal(t, "Longitude", cfg.LongField())
	assert.Equal(t, "Call Volume", cfg.DefaultMeasure())
	assert.Equal(t, "Staffed", cfg.ColorField())
	assert.Equal(t, 9, cfg.ZoomStart())
	assert.Equal(t, 2.5, cfg.RadiusMultiplier())

	for _, f := range cfg.TooltipFields() {
		assert.Equal(t, f.Label == "Region", f.Emphasized, f.Label)
	}
}

func TestBuild_PartialScalarOverrideKeepsDefaults(t *testing.T) {
	cfg, err := Build(scenarioDataset(), &Overrides{SettingsOverride: SettingsOverride{ZoomStart: ptr(7)}})
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.ZoomStart())
	assert.Equal(t, "Lat", cfg.LatField())
	assert.Equal(t, 1.0, cfg.RadiusMultiplier())
}

func TestBuild_ZeroScalarOverridesApply(t *testing.T) {
	ov, err := ParseOverrides(strings.NewReader(`{"zoom_start": 0, "radius_multiplier": 0}`))
	require.NoError(t, err)

	cfg, err := Build(scenarioDataset(), ov)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.ZoomStart())
	assert.Equal(t, 0.0, cfg.RadiusMultiplier())
	assert.Empty(t, cfg.Summary().Warnings)
}

func TestBuild_EmptyColumnOverrideApplies(t *testing.T) {
	ov := &Overrides{SettingsOverride: SettingsOverride{ColorField: ptr("")}}

	cfg, err := Build(scenarioDataset(), ov)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.ColorField())
}

func TestBuild_OverridesNotMutated(t *testing.T) {
	ov := &Overrides{SettingsOverride: SettingsOverride{ZoomStart: ptr(3)}}

	_, err := Build(scenarioDataset(), ov)
	require.NoError(t, err)

	assert.Equal(t, ptr(3), ov.ZoomStart)
	assert.Nil(t, ov.LatField)
}

func TestBuild_NegativeRadiusMultiplier(t *testing.T) {
	cfg, err := Build(scenarioDataset(), &Overrides{SettingsOverride: SettingsOverride{RadiusMultiplier: ptr(-2.0)}})
	require.NoError(t, err)

	assert.Equal(t, 0.0, cfg.RadiusMultiplier())
	warnings := cfg.Summary().Warnings
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "radius multiplier -2 is negative")
}

func TestBuild_UnknownDefaultMeasure(t *testing.T) {
	cfg, err := Build(scenarioDataset(), &Overrides{SettingsOverride: SettingsOverride{DefaultMeasure: ptr("Revenue")}})
	require.NoError(t, err)

	assert.Equal(t, "Staff Count", cfg.DefaultMeasure())
	warnings := cfg.Summary().Warnings
	require.Len(t, warnings, 1)
	assert.True(t, strings.Contains(warnings[0], "Revenue"))
}

func TestBuild_ExtensionsKeptVerbatim(t *testing.T) {
	ov, err := ParseOverrides(strings.NewReader(`{"zoom_start": 6, "legend": {"title": "Sites"}}`))
	require.NoError(t, err)

	cfg, err := Build(scenarioDataset(), ov)
	require.NoError(t, err)

	ext := cfg.Extensions()
	require.Contains(t, ext, "legend")
	assert.JSONEq(t, `{"title": "Sites"}`, string(ext["legend"]))

	ext["legend"] = json.RawMessage(`null`)
	assert.JSONEq(t, `{"title": "Sites"}`, string(cfg.Extensions()["legend"]))
}

func TestBuild_SummaryBounds(t *testing.T) {
	ds := Dataset{Rows: []RawRow{
		{Key: "0", Fields: map[string]any{"Lat": "38.9072", "Long": "-77.0369"}},
		{Key: "1", Fields: map[string]any{"Lat": "40.7128", "Long": "-74.006"}},
	}}
	cfg, err := Build(ds, nil)
	require.NoError(t, err)

	s := cfg.Summary()
	assert.InDelta(t, 38.9072, s.Bounds.Lo().Lat.Degrees(), 1e-6)
	assert.InDelta(t, 40.7128, s.Bounds.Hi().Lat.Degrees(), 1e-6)
	assert.InDelta(t, -77.0369, s.Bounds.Lo().Lng.Degrees(), 1e-6)
	assert.InDelta(t, 328, s.ExtentKm(), 10)
}
