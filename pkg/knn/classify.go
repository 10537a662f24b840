package knn

import "sort"

type neighbor struct {
	distance float64
	species  Species
}

// Classify labels the unknown sample by majority vote among its k nearest
// training samples under the given distance strategy. Ties in distance are
// broken by training input order (stable sort); ties in the vote go to the
// label encountered first in nearest-neighbor order.
func Classify(k int, dist Distance, training []TrainingSample, u UnknownSample) (Species, error) {
	if len(training) == 0 {
		return "", ErrNoTraining
	}
	if k <= 0 || k > len(training) {
		return "", ErrInvalidK
	}

	neighbors := make([]neighbor, len(training))
	for i, t := range training {
		neighbors[i] = neighbor{
			distance: dist.Between(t.Sample, u.Sample),
			species:  t.Species,
		}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].distance < neighbors[j].distance
	})

	votes := make(map[Species]int, 3)
	var best Species
	for _, n := range neighbors[:k] {
		votes[n.species]++
		if best == "" || votes[n.species] > votes[best] {
			best = n.species
		}
	}

	return best, nil
}
