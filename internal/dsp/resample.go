// Package dsp holds the sample-domain processing applied between decoding and
// encoding: sample-rate conversion and loudness normalization.
package dsp

import (
	"errors"
	"math"
)

// ErrInvalidRate is returned when a sample rate is zero or negative.
var ErrInvalidRate = errors.New("sample rate must be positive")

// ResampledLen returns the output length for n samples converted from
// fromRate to toRate.
func ResampledLen(n, fromRate, toRate int) int {
	return int(math.Round(float64(n) * float64(toRate) / float64(fromRate)))
}

// Resample converts samples from fromRate to toRate by linear interpolation.
//
// The output has ResampledLen(len(samples), fromRate, toRate) samples. Each
// output sample lies between two neighbouring input samples, so the result
// never exceeds the input's peak magnitude. When the rates are equal the
// input slice itself is returned.
func Resample(samples []float32, fromRate, toRate int) ([]float32, error) {
	if fromRate <= 0 || toRate <= 0 {
		return nil, ErrInvalidRate
	}
	if fromRate == toRate {
		return samples, nil
	}

	n := ResampledLen(len(samples), fromRate, toRate)
	out := make([]float32, n)
	if len(samples) == 0 {
		return out, nil
	}

	last := len(samples) - 1
	step := float64(fromRate) / float64(toRate)
	for i := range out {
		pos := float64(i) * step
		idx := int(pos)
		if idx >= last {
			out[i] = samples[last]
			continue
		}
		frac := float32(pos - float64(idx))
		a, b := samples[idx], samples[idx+1]
		out[i] = a + (b-a)*frac
	}

	return out, nil
}
