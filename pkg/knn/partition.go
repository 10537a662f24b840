package knn

import (
	"fmt"
	"math/rand"
)

// Partition is a training/testing split of labeled samples. It is built
// once by a Splitter and immutable thereafter; every input sample lands in
// exactly one of the two sequences.
type Partition struct {
	Training []TrainingSample
	Testing  []TestingSample
}

// Splitter assigns labeled samples to a partition.
type Splitter interface {
	Split(samples []KnownSample) (Partition, error)
}

// IndexedSplitter assigns every Modulus-th sample (by input index) to the
// testing partition. Deterministic for a given input order.
type IndexedSplitter struct {
	Modulus int
}

func (s IndexedSplitter) Split(samples []KnownSample) (Partition, error) {
	if s.Modulus < 2 {
		return Partition{}, fmt.Errorf("%w: modulus %d", ErrInvalidSplit, s.Modulus)
	}

	p := Partition{
		Training: make([]TrainingSample, 0, len(samples)),
		Testing:  make([]TestingSample, 0, len(samples)/s.Modulus+1),
	}
	for i, ks := range samples {
		if i%s.Modulus == 0 {
			p.Testing = append(p.Testing, TestingSample{KnownSample: ks})
		} else {
			p.Training = append(p.Training, TrainingSample{KnownSample: ks})
		}
	}
	return p, nil
}

// ShuffleSplitter shuffles with a seeded source, then splits at Ratio.
// The same seed and input always produce the same partition.
type ShuffleSplitter struct {
	Ratio float64
	Seed  int64
}

func (s ShuffleSplitter) Split(samples []KnownSample) (Partition, error) {
	if s.Ratio <= 0 || s.Ratio >= 1 {
		return Partition{}, fmt.Errorf("%w: ratio %v", ErrInvalidSplit, s.Ratio)
	}

	shuffled := make([]KnownSample, len(samples))
	copy(shuffled, samples)

	rng := rand.New(rand.NewSource(s.Seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	split := int(float64(len(shuffled)) * s.Ratio)
	p := Partition{
		Training: make([]TrainingSample, 0, split),
		Testing:  make([]TestingSample, 0, len(shuffled)-split),
	}
	for _, ks := range shuffled[:split] {
		p.Training = append(p.Training, TrainingSample{KnownSample: ks})
	}
	for _, ks := range shuffled[split:] {
		p.Testing = append(p.Testing, TestingSample{KnownSample: ks})
	}
	return p, nil
}
