package classifications

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/calyxlabs/calyx/pkg/query"
	"github.com/calyxlabs/calyx/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "classifications", "c").
	Project("id", "ID").
	Project("dataset_id", "DatasetID").
	Project("sepal_length", "SepalLength").
	Project("sepal_width", "SepalWidth").
	Project("petal_length", "PetalLength").
	Project("petal_width", "PetalWidth").
	Project("species", "Species").
	Project("k", "K").
	Project("distance", "Distance").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for classification queries.
// Nil fields are ignored; all fields use exact matching.
type Filters struct {
	DatasetID *uuid.UUID `json:"dataset_id,omitempty"`
	Species   *string    `json:"species,omitempty"`
	K         *int       `json:"k,omitempty"`
	Distance  *string    `json:"distance,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("DatasetID", f.DatasetID).
		WhereEquals("Species", f.Species).
		WhereEquals("K", f.K).
		WhereEquals("Distance", f.Distance)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if ds := values.Get("dataset_id"); ds != "" {
		if id, err := uuid.Parse(ds); err == nil {
			f.DatasetID = &id
		}
	}

	if sp := values.Get("species"); sp != "" {
		f.Species = &sp
	}

	if k := values.Get("k"); k != "" {
		if v, err := strconv.Atoi(k); err == nil {
			f.K = &v
		}
	}

	if d := values.Get("distance"); d != "" {
		f.Distance = &d
	}

	return f
}

func scanClassification(s repository.Scanner) (Classification, error) {
	var c Classification
	err := s.Scan(
		&c.ID,
		&c.DatasetID,
		&c.SepalLength,
		&c.SepalWidth,
		&c.PetalLength,
		&c.PetalWidth,
		&c.Species,
		&c.K,
		&c.Distance,
		&c.CreatedAt,
	)
	return c, err
}
