package knn

import (
	"fmt"
	"math"
	"strings"
)

// Distance computes a non-negative scalar dissimilarity between two samples.
// Implementations are pure: no state beyond configuration, symmetric in
// their arguments.
type Distance interface {
	Name() string
	Between(a, b Sample) float64
}

// Euclidean is the root of the summed squared differences.
type Euclidean struct{}

func (Euclidean) Name() string { return "euclidean" }

func (Euclidean) Between(a, b Sample) float64 {
	af, bf := a.features(), b.features()
	var sum float64
	for i := range af {
		d := af[i] - bf[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Manhattan is the sum of the absolute differences.
type Manhattan struct{}

func (Manhattan) Name() string { return "manhattan" }

func (Manhattan) Between(a, b Sample) float64 {
	af, bf := a.features(), b.features()
	var sum float64
	for i := range af {
		sum += math.Abs(af[i] - bf[i])
	}
	return sum
}

// Chebyshev is the largest absolute difference across measurements.
type Chebyshev struct{}

func (Chebyshev) Name() string { return "chebyshev" }

func (Chebyshev) Between(a, b Sample) float64 {
	af, bf := a.features(), b.features()
	var max float64
	for i := range af {
		if d := math.Abs(af[i] - bf[i]); d > max {
			max = d
		}
	}
	return max
}

// Sorensen is the Manhattan distance normalized by the summed measurements.
type Sorensen struct{}

func (Sorensen) Name() string { return "sorensen" }

func (Sorensen) Between(a, b Sample) float64 {
	af, bf := a.features(), b.features()
	var num, den float64
	for i := range af {
		num += math.Abs(af[i] - bf[i])
		den += af[i] + bf[i]
	}
	return num / den
}

// Minkowski generalizes the other strategies: exponent M and a reduction
// over the per-measurement terms. A nil Reduce sums, which with M=2 yields
// Euclidean and with M=1 Manhattan; a max reduction with M=1 yields Chebyshev.
type Minkowski struct {
	M      int
	Reduce func(values []float64) float64
}

func (m Minkowski) Name() string { return fmt.Sprintf("minkowski-%d", m.M) }

func (m Minkowski) Between(a, b Sample) float64 {
	af, bf := a.features(), b.features()
	terms := make([]float64, len(af))
	for i := range af {
		terms[i] = math.Pow(math.Abs(af[i]-bf[i]), float64(m.M))
	}

	reduce := m.Reduce
	if reduce == nil {
		reduce = sum
	}
	return math.Pow(reduce(terms), 1/float64(m.M))
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// ParseDistance resolves a strategy by name. Recognized names are
// euclidean, manhattan, chebyshev, and sorensen.
func ParseDistance(name string) (Distance, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "euclidean":
		return Euclidean{}, nil
	case "manhattan":
		return Manhattan{}, nil
	case "chebyshev":
		return Chebyshev{}, nil
	case "sorensen":
		return Sorensen{}, nil
	default:
		return nil, fmt.Errorf("unknown distance strategy: %q", name)
	}
}
