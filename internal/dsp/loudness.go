package dsp

import "math"

// DefaultRMSTarget is the music RMS level that Save normalizes to.
const DefaultRMSTarget = 0.2

// RMS returns the root-mean-square level of samples, or 0 for no samples.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// GainToReachTarget returns the multiplier that brings the RMS of samples to
// target. Silence gets a gain of 1.
func GainToReachTarget(samples []float32, target float64) float64 {
	rms := RMS(samples)
	if rms == 0 {
		return 1
	}
	return target / rms
}

// ApplyGain returns a gained copy of samples clamped to [-1, 1].
func ApplyGain(samples []float32, gain float64) []float32 {
	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = float32(Clamp(float64(s) * gain))
	}
	return out
}

// Clamp limits v to [-1, 1].
func Clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
