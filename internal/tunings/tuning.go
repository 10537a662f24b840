// Package tunings implements the hyperparameter tuning domain for Calyx.
// It evaluates grids of k and distance combinations against a dataset's
// testing partition and stores per-cell quality results.
package tunings

import (
	"time"

	"github.com/google/uuid"
)

// Tuning represents one evaluated grid cell: the fraction of testing samples
// a k and distance combination classified correctly, and how long the
// evaluation took.
type Tuning struct {
	ID        uuid.UUID `json:"id"`
	DatasetID uuid.UUID `json:"dataset_id"`
	K         int       `json:"k"`
	Distance  string    `json:"distance"`
	Quality   float64   `json:"quality"`
	ElapsedUS int64     `json:"elapsed_us"`
	CreatedAt time.Time `json:"created_at"`
}

// RunCommand carries the grid to evaluate against a dataset. Empty Ks or
// Distances fall back to the default grid.
type RunCommand struct {
	DatasetID uuid.UUID `json:"dataset_id"`
	Ks        []int     `json:"ks,omitempty"`
	Distances []string  `json:"distances,omitempty"`
}

// Default grid evaluated when a run request omits ks or distances.
var (
	DefaultKs        = []int{1, 3, 5, 7, 9}
	DefaultDistances = []string{"euclidean", "manhattan", "chebyshev", "sorensen"}
)
