package factors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	table := NewTable()

	tests := []struct {
		name      string
		category  string
		key       string
		wantValue float64
		wantOK    bool
	}{
		{"natural gas", CategoryScope1, "naturalGasKwh", 0.18316, true},
		{"grid electricity", CategoryScope2, "gridElectricityKwh", 0.20705, true},
		{"sector intensity", CategoryFinancedSector, "manufacturing", 394.0, true},
		{"unknown key", CategoryScope1, "antimatter", 0, false},
		{"wrong category", CategoryScope2, "dieselLiters", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := table.Lookup(tt.category, tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantValue, f.Value)
				assert.Equal(t, tt.category, f.Category)
			}
		})
	}
}

func TestBaselineIntegrity(t *testing.T) {
	table := NewTable()

	assert.Equal(t, len(baselineFactors), table.Len())

	v, ok := table.SourceVersion(BaselineSource)
	require.True(t, ok)
	assert.Equal(t, BaselineVersion, v)

	// The default sector must exist or the financed tier-4 fallback
	// breaks.
	_, ok = table.Lookup(CategoryFinancedSector, DefaultSector)
	assert.True(t, ok)

	// Financed factors carry their PCAF tier; activity factors do not.
	for _, f := range table.Category(CategoryFinancedSector) {
		assert.Equal(t, 4, f.QualityTier)
	}
	for _, f := range table.Category(CategoryScope1) {
		assert.Zero(t, f.QualityTier)
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		dataset Dataset
		wantErr error
	}{
		{
			name: "overlay replaces and adds",
			dataset: Dataset{
				Source:  "DEFRA-2025",
				Version: "2.0.0",
				Factors: []Factor{
					{Category: CategoryScope1, Key: "naturalGasKwh", Value: 0.18254, Unit: UnitKWh, Scope: Scope1},
					{Category: CategoryScope1, Key: "biomassKwh", Value: 0.01513, Unit: UnitKWh, Scope: Scope1},
				},
			},
		},
		{
			name:    "empty dataset rejected",
			dataset: Dataset{Source: "X", Version: "1.0.0"},
			wantErr: ErrEmptyDataset,
		},
		{
			name: "garbage version rejected",
			dataset: Dataset{
				Source:  "X",
				Version: "latest",
				Factors: []Factor{{Category: CategoryScope1, Key: "k", Value: 1}},
			},
			wantErr: ErrInvalidDatasetVersion,
		},
		{
			name: "stale baseline overlay rejected",
			dataset: Dataset{
				Source:  BaselineSource,
				Version: "0.9.0",
				Factors: []Factor{{Category: CategoryScope1, Key: "k", Value: 1}},
			},
			wantErr: ErrStaleDataset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable()
			err := table.Merge(tt.dataset)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			replaced, ok := table.Lookup(CategoryScope1, "naturalGasKwh")
			require.True(t, ok)
			assert.Equal(t, 0.18254, replaced.Value)
			assert.Equal(t, "DEFRA-2025", replaced.Source, "overlay source label applied")

			added, ok := table.Lookup(CategoryScope1, "biomassKwh")
			require.True(t, ok)
			assert.Equal(t, 0.01513, added.Value)

			v, ok := table.SourceVersion("DEFRA-2025")
			require.True(t, ok)
			assert.Equal(t, "2.0.0", v)
		})
	}
}

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "factors.yaml")
	content := `source: DEFRA-2025
version: 2.1.0
factors:
  - category: scope1
    key: naturalGasKwh
    value: 0.18254
    unit: kWh
    scope: 1
    uncertainty: 0.05
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	ds, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, "DEFRA-2025", ds.Source)
	assert.Equal(t, "2.1.0", ds.Version)
	require.Len(t, ds.Factors, 1)
	assert.Equal(t, 0.18254, ds.Factors[0].Value)
	assert.Equal(t, UnitKWh, ds.Factors[0].Unit)
	assert.Equal(t, Scope1, ds.Factors[0].Scope)

	_, err = LoadDataset(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
