// Package downsample reduces long per-position curves to a bounded number of
// points by uniform stride sampling.
package downsample

import (
	"errors"
	"fmt"

	"github.com/ethpandaops/fastplong-multireport/constants"
)

// ErrInvalidBudget is returned when the point budget is below one.
var ErrInvalidBudget = errors.New("invalid point budget")

// Downsample returns positions and values of at most maxPoints samples of
// values. Curves that already fit are returned whole; longer ones are
// point-sampled at a fixed stride starting at position 0, no averaging.
func Downsample(values []float64, maxPoints int) ([]int, []float64, error) {
	if maxPoints < 1 {
		return nil, nil, fmt.Errorf("%w: "+constants.ErrInvalidBudget, ErrInvalidBudget, maxPoints)
	}

	n := len(values)
	if n <= maxPoints {
		positions := make([]int, n)
		for i := range positions {
			positions[i] = i
		}

		out := make([]float64, n)
		copy(out, values)

		return positions, out, nil
	}

	step := Stride(n, maxPoints)
	count := (n + step - 1) / step

	positions := make([]int, 0, count)
	out := make([]float64, 0, count)

	for i := 0; i < n; i += step {
		positions = append(positions, i)
		out = append(out, values[i])
	}

	return positions, out, nil
}

// Stride is floor(n/maxPoints), at least 1, bumped by one when the floor
// would emit more than maxPoints samples.
func Stride(n, maxPoints int) int {
	if maxPoints < 1 || n <= maxPoints {
		return 1
	}

	step := n / maxPoints
	if step < 1 {
		step = 1
	}

	if (n+step-1)/step > maxPoints {
		step++
	}

	return step
}
