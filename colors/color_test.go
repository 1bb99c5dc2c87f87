package colors

import (
	"image/color"
	"math"
	"testing"
)

func TestLinearToGamma(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.5},
		{1, 1},
		{4, 2},
	}
	for _, c := range cases {
		if got := LinearToGamma(c.in); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("LinearToGamma(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestToRGBA(t *testing.T) {
	cases := []struct {
		name string
		in   Color
		want color.RGBA
	}{
		{"black", Black(), color.RGBA{0, 0, 0, 255}},
		{"white", White(), color.RGBA{255, 255, 255, 255}},
		{"overexposed", New(7, 2, 1.5), color.RGBA{255, 255, 255, 255}},
		{"negative", New(-0.5, -1, -2), color.RGBA{0, 0, 0, 255}},
		{"quarter", New(0.25, 0.25, 0.25), color.RGBA{128, 128, 128, 255}},
		{"mixed", New(0.25, 0, 1), color.RGBA{128, 0, 255, 255}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ToRGBA(c.in); got != c.want {
				t.Errorf("ToRGBA(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestMix(t *testing.T) {
	a, b := White(), New(0, 0.5, 0.7)
	if got := Mix(a, b, 0); got != a {
		t.Errorf("Mix at 0 = %v, want %v", got, a)
	}
	if got := Mix(a, b, 1); got != b {
		t.Errorf("Mix at 1 = %v, want %v", got, b)
	}
	mid := Mix(a, b, 0.5)
	if math.Abs(mid.Y-0.75) > 1e-12 {
		t.Errorf("Mix at 0.5 green = %v, want 0.75", mid.Y)
	}
}
