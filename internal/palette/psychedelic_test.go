package palette

import (
	"math"
	"testing"
)

func TestPsychedelicReferenceTable(t *testing.T) {
	cases := []struct {
		t    float64
		want Color
	}{
		{0.0, Color{127, 237, 237}}, // 127.5 truncates to 127
		{0.1, Color{230, 191, 11}},
		{0.25, Color{217, 4, 250}},
		{0.5, Color{0, 191, 191}},
		{0.8, Color{248, 237, 222}},
		{1.0, Color{127, 17, 17}},
	}
	for _, c := range cases {
		if got := Psychedelic(c.t); got != c.want {
			t.Errorf("Psychedelic(%v) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestChannelTruncatesTowardZero(t *testing.T) {
	for _, tv := range []float64{0, 0.013, 0.37, 0.5, 0.77, 0.99, 1.4} {
		raw := (math.Sin(tv*math.Pi*GreenFreq+GreenPhase)*0.5 + 0.5) * 255.0
		got := Channel(tv, GreenFreq, GreenPhase)
		if float64(got) > raw || raw-float64(got) >= 1 {
			t.Errorf("Channel(%v) = %d, raw %v: not truncated", tv, got, raw)
		}
	}
}

func TestPsychedelicNaN(t *testing.T) {
	if c := Psychedelic(math.NaN()); c != Black {
		t.Errorf("Psychedelic(NaN) = %v, want black", c)
	}
}

func TestUnit(t *testing.T) {
	u := Color{255, 0, 51}.Unit()
	if u[0] != 1 || u[1] != 0 || math.Abs(u[2]-0.2) > 1e-12 {
		t.Errorf("Unit = %v", u)
	}
}
