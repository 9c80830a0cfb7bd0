package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverrides(t *testing.T) {
	doc := `{
		"lat_col": "Latitude",
		"zoom_start": 8,
		"radius_multiplier": 1.5,
		"measure_cols": {"Revenue": "Revenue_Column", "Staff Count": "Headcount"},
		"tooltip_cols": {"Manager": "Mgr"},
		"bold_labels": ["Manager"],
		"theme": "dark"
	}`

	ov, err := ParseOverrides(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, ptr("Latitude"), ov.LatField)
	assert.Equal(t, ptr(8), ov.ZoomStart)
	assert.Equal(t, ptr(1.5), ov.RadiusMultiplier)
	assert.Nil(t, ov.ColorField)
	assert.Equal(t, FieldList{
		{Label: "Revenue", Column: "Revenue_Column"},
		{Label: "Staff Count", Column: "Headcount"},
	}, ov.MeasureCols)
	assert.Equal(t, FieldList{{Label: "Manager", Column: "Mgr"}}, ov.TooltipCols)
	assert.Equal(t, []string{"Manager"}, ov.BoldLabels)
	require.Len(t, ov.Extensions, 1)
	assert.JSONEq(t, `"dark"`, string(ov.Extensions["theme"]))
}

func TestParseOverrides_Empty(t *testing.T) {
	ov, err := ParseOverrides(strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.Equal(t, &Overrides{}, ov)
}

func TestParseOverrides_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", "{zoom"},
		{"measure cols array", `{"measure_cols": ["a"]}`},
		{"measure column number", `{"measure_cols": {"A": 3}}`},
		{"zoom as text", `{"zoom_start": "five"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOverrides(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse overrides")
		})
	}
}

func TestFieldList_OrderPreserved(t *testing.T) {
	var l FieldList
	require.NoError(t, json.Unmarshal([]byte(`{"z": "1", "a": "2", "m": "3", "a": "4"}`), &l))

	assert.Equal(t, FieldList{
		{Label: "z", Column: "1"},
		{Label: "a", Column: "4"},
		{Label: "m", Column: "3"},
	}, l)

	out, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"1","a":"4","m":"3"}`, string(out))
}

func TestFieldList_MergeDoesNotMutateReceiver(t *testing.T) {
	base := DefaultMeasureCols()
	merged := base.Merge(FieldList{{Label: "Staff Count", Column: "Headcount"}})

	assert.Equal(t, "Staff_Count", base[0].Column)
	assert.Equal(t, "Headcount", merged[0].Column)
}

func ptr[T any](v T) *T { return &v }
