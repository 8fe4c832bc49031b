package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// mean returns the arithmetic mean of x.
func mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// popStd returns the population standard deviation of x. The reported
// good/bad spreads use the population form; the t-test below uses the
// sample form.
func popStd(x []float64, m float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range x {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(x)))
}

// sampleVar returns the unbiased sample variance of x.
func sampleVar(x []float64, m float64) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range x {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(x)-1)
}

// welchP returns the two-sided p-value of Welch's unequal-variance
// two-sample t-test, with degrees of freedom from the
// Welch-Satterthwaite approximation. Returns 0 when both partitions
// have zero variance but different means, and NaN when the test is
// undefined.
func welchP(a, b []float64) float64 {
	ma, mb := mean(a), mean(b)
	va, vb := sampleVar(a, ma), sampleVar(b, mb)
	na, nb := float64(len(a)), float64(len(b))

	sa := va / na
	sb := vb / nb
	se := sa + sb
	if se == 0 {
		if ma == mb {
			return math.NaN()
		}
		return 0
	}

	t := (ma - mb) / math.Sqrt(se)
	df := se * se / (sa*sa/(na-1) + sb*sb/(nb-1))
	if math.IsNaN(df) || df <= 0 {
		return math.NaN()
	}

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}
