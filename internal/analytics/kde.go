package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"impactsim/internal/errors"
)

// KernelDensity is a Gaussian kernel density estimator over a sample.
// The histogram chart overlays its curve on the binned counts.
type KernelDensity struct {
	samples   []float64
	bandwidth float64
}

// DensityPoint is one evaluated point of a density curve
type DensityPoint struct {
	X       float64
	Density float64
}

// NewKernelDensity builds an estimator using Scott's rule for the
// bandwidth: sample standard deviation scaled by n^(-1/5). A degenerate
// sample with zero spread falls back to a unit bandwidth.
func NewKernelDensity(samples []float64) (*KernelDensity, error) {
	if len(samples) == 0 {
		return nil, errors.NewValidationError("kernel density requires a non-empty sample")
	}

	bandwidth := stat.StdDev(samples, nil) * math.Pow(float64(len(samples)), -0.2)
	if bandwidth <= 0 || math.IsNaN(bandwidth) {
		bandwidth = 1.0
	}

	return &KernelDensity{
		samples:   append([]float64(nil), samples...),
		bandwidth: bandwidth,
	}, nil
}

// Bandwidth returns the smoothing bandwidth in data units
func (k *KernelDensity) Bandwidth() float64 {
	return k.bandwidth
}

// Evaluate returns the estimated probability density at x
func (k *KernelDensity) Evaluate(x float64) float64 {
	var sum float64
	for _, s := range k.samples {
		sum += distuv.UnitNormal.Prob((x - s) / k.bandwidth)
	}
	return sum / (float64(len(k.samples)) * k.bandwidth)
}

// Grid evaluates the density at n evenly spaced points from lo to hi
// inclusive. n must be at least 2.
func (k *KernelDensity) Grid(lo, hi float64, n int) []DensityPoint {
	if n < 2 {
		n = 2
	}

	step := (hi - lo) / float64(n-1)
	points := make([]DensityPoint, n)
	for i := range points {
		x := lo + float64(i)*step
		points[i] = DensityPoint{X: x, Density: k.Evaluate(x)}
	}
	return points
}
