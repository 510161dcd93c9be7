package downsample

import (
	"errors"
	"sync"
	"testing"
)

func sequence(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i%37) + float64(i)/1000
	}

	return values
}

func TestDownsampleIdentity(t *testing.T) {
	for _, n := range []int{1, 2, 10, 1999, 2000} {
		values := sequence(n)

		positions, out, err := Downsample(values, 2000)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if len(positions) != n || len(out) != n {
			t.Fatalf("Expected %d points, got %d/%d", n, len(positions), len(out))
		}

		for i := 0; i < n; i++ {
			if positions[i] != i || out[i] != values[i] {
				t.Fatalf("Expected identity at %d, got (%d, %v)", i, positions[i], out[i])
			}
		}
	}
}

func TestDownsampleStride(t *testing.T) {
	values := sequence(10000)

	positions, out, err := Downsample(values, 2000)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(positions) != 2000 {
		t.Errorf("Expected 2000 points, got %d", len(positions))
	}

	if positions[0] != 0 || positions[1] != 5 {
		t.Errorf("Expected positions to start 0, 5, got %d, %d", positions[0], positions[1])
	}

	if out[1] != values[5] {
		t.Errorf("Expected value at position 5 to be %v, got %v", values[5], out[1])
	}
}

func TestDownsampleBoundedAndExact(t *testing.T) {
	tests := []struct {
		n, max int
	}{
		{10000, 3000},
		{2001, 2000},
		{3999, 2000},
		{7, 3},
		{100, 1},
	}

	for _, tt := range tests {
		values := sequence(tt.n)

		positions, out, err := Downsample(values, tt.max)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if len(positions) != len(out) {
			t.Fatalf("Expected equal lengths, got %d and %d", len(positions), len(out))
		}

		if len(positions) > tt.max {
			t.Errorf("n=%d max=%d: expected at most %d points, got %d", tt.n, tt.max, tt.max, len(positions))
		}

		if positions[0] != 0 {
			t.Errorf("n=%d max=%d: expected first position 0, got %d", tt.n, tt.max, positions[0])
		}

		for i, p := range positions {
			if p >= tt.n {
				t.Fatalf("position %d out of range", p)
			}

			if i > 0 && p <= positions[i-1] {
				t.Fatalf("positions not strictly increasing at %d", i)
			}

			if out[i] != values[p] {
				t.Fatalf("value at %d is %v, expected %v", p, out[i], values[p])
			}
		}
	}
}

func TestDownsampleEmpty(t *testing.T) {
	positions, out, err := Downsample(nil, 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(positions) != 0 || len(out) != 0 {
		t.Errorf("Expected empty results, got %v, %v", positions, out)
	}
}

func TestDownsampleInvalidBudget(t *testing.T) {
	for _, budget := range []int{0, -1} {
		_, _, err := Downsample(sequence(10), budget)
		if !errors.Is(err, ErrInvalidBudget) {
			t.Errorf("Expected ErrInvalidBudget for %d, got %v", budget, err)
		}
	}
}

func TestDownsampleDoesNotAliasInput(t *testing.T) {
	values := []float64{1, 2, 3}

	_, out, err := Downsample(values, 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out[0] = 99
	if values[0] != 1 {
		t.Error("Expected input to be left untouched")
	}
}

func TestDownsampleDeterministicUnderConcurrency(t *testing.T) {
	values := sequence(12345)

	want, _, err := Downsample(values, 1000)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var wg sync.WaitGroup
	results := make([][]int, 8)

	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			results[i], _, _ = Downsample(values, 1000)
		}(i)
	}

	wg.Wait()

	for i, got := range results {
		if len(got) != len(want) {
			t.Fatalf("run %d: expected %d points, got %d", i, len(want), len(got))
		}

		for j := range got {
			if got[j] != want[j] {
				t.Fatalf("run %d: mismatch at %d", i, j)
			}
		}
	}
}

func TestStride(t *testing.T) {
	tests := []struct {
		n, max, expected int
	}{
		{10000, 2000, 5},
		{10000, 3000, 4},
		{2001, 2000, 2},
		{100, 200, 1},
		{100, 0, 1},
	}

	for _, tt := range tests {
		if got := Stride(tt.n, tt.max); got != tt.expected {
			t.Errorf("Stride(%d, %d): expected %d, got %d", tt.n, tt.max, tt.expected, got)
		}
	}
}
