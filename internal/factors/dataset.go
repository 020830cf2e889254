package factors

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrInvalidDatasetVersion indicates a dataset version that is not
	// valid semver.
	ErrInvalidDatasetVersion = constError("invalid dataset version")

	// ErrStaleDataset indicates an overlay dataset older than the version
	// already loaded for the same source label.
	ErrStaleDataset = constError("stale dataset version")

	// ErrEmptyDataset indicates a dataset file with no factors.
	ErrEmptyDataset = constError("dataset contains no factors")
)

// Dataset is a versioned set of emission factors loaded from YAML.
// Factors in an overlay replace baseline factors with the same
// (category, key) and add any new ones.
type Dataset struct {
	Source  string   `yaml:"source"`
	Version string   `yaml:"version"`
	Factors []Factor `yaml:"factors"`
}

// LoadDataset reads and parses a YAML dataset file.
func LoadDataset(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return ds, nil
}

// Merge applies an overlay dataset to the table. The dataset's version must
// parse as semver and must not be older than any version already applied
// for the same source label. Merge is intended for startup only; the table
// is not safe for mutation once shared.
func (t *Table) Merge(ds Dataset) error {
	if len(ds.Factors) == 0 {
		return ErrEmptyDataset
	}

	ver, err := semver.NewVersion(ds.Version)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDatasetVersion, ds.Version)
	}

	if existing, ok := t.sourceVersions[ds.Source]; ok {
		prev, perr := semver.NewVersion(existing)
		if perr == nil && ver.LessThan(prev) {
			return fmt.Errorf("%w: %s %s is older than loaded %s",
				ErrStaleDataset, ds.Source, ds.Version, existing)
		}
	}

	for _, f := range ds.Factors {
		if f.Source == "" {
			f.Source = ds.Source
		}
		t.factors[f.ID()] = f
	}
	t.sourceVersions[ds.Source] = ds.Version
	return nil
}

// SourceVersion returns the dataset version loaded for a source label.
func (t *Table) SourceVersion(source string) (string, bool) {
	v, ok := t.sourceVersions[source]
	return v, ok
}
