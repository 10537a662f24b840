package knn_test

import (
	"errors"
	"testing"

	"github.com/calyxlabs/calyx/pkg/knn"
)

func training(samples ...knn.KnownSample) []knn.TrainingSample {
	out := make([]knn.TrainingSample, len(samples))
	for i, ks := range samples {
		out[i] = knn.TrainingSample{KnownSample: ks}
	}
	return out
}

func known(sl, sw, pl, pw float64, species knn.Species) knn.KnownSample {
	return knn.KnownSample{
		Sample:  knn.Sample{SepalLength: sl, SepalWidth: sw, PetalLength: pl, PetalWidth: pw},
		Species: species,
	}
}

func TestClassifyNearestNeighbor(t *testing.T) {
	train := training(
		known(1, 2, 3, 4, knn.Setosa),
		known(2, 3, 4, 5, knn.Versicolour),
		known(3, 4, 5, 6, knn.Virginica),
	)
	unknown := knn.UnknownSample{Sample: knn.Sample{SepalLength: 2.1, SepalWidth: 3.1, PetalLength: 4.1, PetalWidth: 5.1}}

	got, err := knn.Classify(1, knn.Manhattan{}, train, unknown)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if got != knn.Versicolour {
		t.Errorf("k=1: got %s, want %s", got, knn.Versicolour)
	}
}

func TestClassifyMajorityVote(t *testing.T) {
	// Two close versicolour neighbors outvote the single nearest setosa.
	train := training(
		known(5.0, 3.0, 1.5, 0.3, knn.Setosa),
		known(5.2, 3.1, 1.6, 0.4, knn.Versicolour),
		known(5.3, 3.2, 1.7, 0.5, knn.Versicolour),
		known(7.9, 3.8, 6.4, 2.0, knn.Virginica),
	)
	unknown := knn.UnknownSample{Sample: knn.Sample{SepalLength: 5.0, SepalWidth: 3.0, PetalLength: 1.5, PetalWidth: 0.3}}

	got, err := knn.Classify(3, knn.Euclidean{}, train, unknown)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if got != knn.Versicolour {
		t.Errorf("majority vote: got %s, want %s", got, knn.Versicolour)
	}
}

func TestClassifyVoteTieBreak(t *testing.T) {
	// Equidistant neighbors with a 1-1 vote: the first in stable
	// nearest-neighbor order wins.
	train := training(
		known(1, 1, 1, 1, knn.Setosa),
		known(3, 3, 3, 3, knn.Virginica),
	)
	unknown := knn.UnknownSample{Sample: knn.Sample{SepalLength: 2, SepalWidth: 2, PetalLength: 2, PetalWidth: 2}}

	got, err := knn.Classify(2, knn.Euclidean{}, train, unknown)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if got != knn.Setosa {
		t.Errorf("tie break: got %s, want %s", got, knn.Setosa)
	}
}

func TestClassifyConfigurationErrors(t *testing.T) {
	train := training(known(1, 2, 3, 4, knn.Setosa))
	unknown := knn.UnknownSample{}

	tests := []struct {
		name  string
		k     int
		train []knn.TrainingSample
		want  error
	}{
		{name: "zero k", k: 0, train: train, want: knn.ErrInvalidK},
		{name: "negative k", k: -3, train: train, want: knn.ErrInvalidK},
		{name: "k exceeds training size", k: 2, train: train, want: knn.ErrInvalidK},
		{name: "empty training set", k: 1, train: nil, want: knn.ErrNoTraining},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := knn.Classify(tt.k, knn.Euclidean{}, tt.train, unknown)
			if !errors.Is(err, tt.want) {
				t.Errorf("error: got %v, want %v", err, tt.want)
			}
		})
	}
}
