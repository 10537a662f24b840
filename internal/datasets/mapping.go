package datasets

import (
	"net/url"

	"github.com/calyxlabs/calyx/pkg/knn"
	"github.com/calyxlabs/calyx/pkg/query"
	"github.com/calyxlabs/calyx/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "datasets", "d").
	Project("id", "ID").
	Project("name", "Name").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("storage_key", "StorageKey").
	Project("sample_count", "SampleCount").
	Project("training_count", "TrainingCount").
	Project("testing_count", "TestingCount").
	Project("split_policy", "SplitPolicy").
	Project("uploaded_at", "UploadedAt").
	Project("tested_at", "TestedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for dataset queries.
// Nil fields are ignored. SplitPolicy and ContentType use exact matching;
// Name and Filename use case-insensitive contains matching.
type Filters struct {
	Name        *string `json:"name,omitempty"`
	Filename    *string `json:"filename,omitempty"`
	ContentType *string `json:"content_type,omitempty"`
	SplitPolicy *string `json:"split_policy,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereContains("Filename", f.Filename).
		WhereEquals("ContentType", f.ContentType).
		WhereEquals("SplitPolicy", f.SplitPolicy)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	if sp := values.Get("split_policy"); sp != "" {
		f.SplitPolicy = &sp
	}

	return f
}

func scanDataset(s repository.Scanner) (Dataset, error) {
	var d Dataset
	err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Filename,
		&d.ContentType,
		&d.SizeBytes,
		&d.StorageKey,
		&d.SampleCount,
		&d.TrainingCount,
		&d.TestingCount,
		&d.SplitPolicy,
		&d.UploadedAt,
		&d.TestedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func scanKnownSample(s repository.Scanner) (knn.KnownSample, error) {
	var (
		k       knn.KnownSample
		species string
	)

	err := s.Scan(
		&k.SepalLength,
		&k.SepalWidth,
		&k.PetalLength,
		&k.PetalWidth,
		&species,
	)
	if err != nil {
		return k, err
	}

	k.Species = knn.Species(species)
	return k, nil
}
