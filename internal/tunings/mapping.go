package tunings

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/calyxlabs/calyx/pkg/query"
	"github.com/calyxlabs/calyx/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "tunings", "t").
	Project("id", "ID").
	Project("dataset_id", "DatasetID").
	Project("k", "K").
	Project("distance", "Distance").
	Project("quality", "Quality").
	Project("elapsed_us", "ElapsedUS").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "Quality",
	Descending: true,
}

// Filters contains optional filtering criteria for tuning queries.
// Nil fields are ignored; all fields use exact matching.
type Filters struct {
	DatasetID *uuid.UUID `json:"dataset_id,omitempty"`
	K         *int       `json:"k,omitempty"`
	Distance  *string    `json:"distance,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("DatasetID", f.DatasetID).
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

func scanTuning(s repository.Scanner) (Tuning, error) {
	var t Tuning
	err := s.Scan(
		&t.ID,
		&t.DatasetID,
		&t.K,
		&t.Distance,
		&t.Quality,
		&t.ElapsedUS,
		&t.CreatedAt,
	)
	return t, err
}
