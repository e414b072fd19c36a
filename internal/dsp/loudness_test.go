package dsp

import (
	"math"
	"testing"
)

func TestRMS(t *testing.T) {
	tests := []struct {
		name    string
		samples []float32
		want    float64
	}{
		{"empty", nil, 0},
		{"silence", []float32{0, 0, 0}, 0},
		{"constant", []float32{0.5, -0.5, 0.5, -0.5}, 0.5},
		{"mixed", []float32{1, 0}, math.Sqrt(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMS(tt.samples); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RMS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMS_Sine(t *testing.T) {
	got := RMS(sine(44100, 44100, 441, 1))
	if math.Abs(got-1/math.Sqrt2) > 1e-3 {
		t.Errorf("RMS of unit sine = %v, want ~%v", got, 1/math.Sqrt2)
	}
}

func TestGainToReachTarget(t *testing.T) {
	if g := GainToReachTarget(nil, DefaultRMSTarget); g != 1 {
		t.Errorf("gain for empty input = %v, want 1", g)
	}
	if g := GainToReachTarget([]float32{0, 0}, DefaultRMSTarget); g != 1 {
		t.Errorf("gain for silence = %v, want 1", g)
	}

	samples := []float32{0.1, -0.1, 0.1, -0.1}
	g := GainToReachTarget(samples, DefaultRMSTarget)
	if math.Abs(g-2) > 1e-6 {
		t.Errorf("gain = %v, want 2", g)
	}
	if rms := RMS(ApplyGain(samples, g)); math.Abs(rms-DefaultRMSTarget) > 1e-6 {
		t.Errorf("RMS after gain = %v, want %v", rms, DefaultRMSTarget)
	}
}

func TestApplyGain_CopiesAndClamps(t *testing.T) {
	in := []float32{0.25, -0.75, 0.9}
	out := ApplyGain(in, 2)

	want := []float32{0.5, -1, 1}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
	if in[0] != 0.25 {
		t.Error("ApplyGain must not modify its input")
	}
}
