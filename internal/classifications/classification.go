// Package classifications implements the classification domain for Calyx.
// It provides types, data access, and business logic for classifying unknown
// iris samples against a dataset's training partition and storing the results.
package classifications

import (
	"time"

	"github.com/google/uuid"
)

// Classification represents a stored k-nearest-neighbor result for an
// unknown sample. Results are insert-only; a stored classification is never
// reassigned.
type Classification struct {
	ID          uuid.UUID `json:"id"`
	DatasetID   uuid.UUID `json:"dataset_id"`
	SepalLength float64   `json:"sepal_length"`
	SepalWidth  float64   `json:"sepal_width"`
	PetalLength float64   `json:"petal_length"`
	PetalWidth  float64   `json:"petal_width"`
	Species     string    `json:"species"`
	K           int       `json:"k"`
	Distance    string    `json:"distance"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClassifyCommand carries an unknown sample and optional hyperparameter
// overrides. Nil K and Distance fall back to the configured defaults.
type ClassifyCommand struct {
	DatasetID   uuid.UUID `json:"dataset_id"`
	SepalLength float64   `json:"sepal_length"`
	SepalWidth  float64   `json:"sepal_width"`
	PetalLength float64   `json:"petal_length"`
	PetalWidth  float64   `json:"petal_width"`
	K           *int      `json:"k,omitempty"`
	Distance    *string   `json:"distance,omitempty"`
}
