// Package knn implements k-nearest-neighbors classification over iris
// measurement samples: sample and species types, pluggable distance
// strategies, training/testing partitioning, and hyperparameter evaluation.
package knn

import "fmt"

// Species is an iris species label drawn from a fixed enumerated set.
type Species string

const (
	Setosa      Species = "Iris-setosa"
	Versicolour Species = "Iris-versicolour"
	Virginica   Species = "Iris-virginica"
)

// ParseSpecies validates a raw species string against the enumerated set.
// Returns ErrInvalidSample for anything outside it.
func ParseSpecies(raw string) (Species, error) {
	switch s := Species(raw); s {
	case Setosa, Versicolour, Virginica:
		return s, nil
	default:
		return "", fmt.Errorf("%w: unknown species %q", ErrInvalidSample, raw)
	}
}

// Sample holds the four iris measurements. Immutable value type.
type Sample struct {
	SepalLength float64 `json:"sepal_length"`
	SepalWidth  float64 `json:"sepal_width"`
	PetalLength float64 `json:"petal_length"`
	PetalWidth  float64 `json:"petal_width"`
}

func (s Sample) features() [4]float64 {
	return [4]float64{s.SepalLength, s.SepalWidth, s.PetalLength, s.PetalWidth}
}

// KnownSample is a Sample with its labeled species.
type KnownSample struct {
	Sample
	Species Species `json:"species"`
}

// TrainingSample tags a KnownSample as a member of the training partition.
// Training samples never receive a classification result.
type TrainingSample struct {
	KnownSample
}

// TestingSample tags a KnownSample as a member of the testing partition.
// Its classification is empty until assigned by a classifier, at most once.
type TestingSample struct {
	KnownSample
	Classification Species `json:"classification,omitempty"`
}

// Assign records the classifier's result. A second assignment is a
// programming error and is rejected to keep evaluations single-pass.
func (t *TestingSample) Assign(result Species) error {
	if t.Classification != "" {
		return ErrAlreadyClassified
	}
	t.Classification = result
	return nil
}

// Matches reports whether the assigned classification agrees with the label.
func (t *TestingSample) Matches() bool {
	return t.Classification != "" && t.Classification == t.Species
}

// UnknownSample is an unlabeled sample submitted for classification.
type UnknownSample struct {
	Sample
}

// ClassifiedSample pairs an unknown sample with its classification result.
type ClassifiedSample struct {
	Sample
	Classification Species `json:"classification"`
}
