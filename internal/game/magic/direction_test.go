package magic

import (
	"math"
	"testing"

	"github.com/veleth/moonblade/internal/model"
)

const dirEps = 1e-9

func vecClose(a, b model.Vec) bool {
	return math.Abs(a.X-b.X) < dirEps && math.Abs(a.Y-b.Y) < dirEps
}

func TestDir32Cardinals(t *testing.T) {
	cases := []struct {
		index int
		want  model.Vec
	}{
		{0, model.Vec{X: 0, Y: 1}},   // south
		{8, model.Vec{X: -1, Y: 0}},  // west
		{16, model.Vec{X: 0, Y: -1}}, // north
		{24, model.Vec{X: 1, Y: 0}},  // east
	}
	for _, c := range cases {
		if got := Dir32(c.index); !vecClose(got, c.want) {
			t.Errorf("Dir32(%d) = %v, want %v", c.index, got, c.want)
		}
	}
}

func TestDir32UnitLength(t *testing.T) {
	for i := range DirCount32 {
		v := Dir32(i)
		if l := math.Sqrt(v.X*v.X + v.Y*v.Y); math.Abs(l-1) > dirEps {
			t.Errorf("Dir32(%d) length = %v, want 1", i, l)
		}
	}
}

func TestDir8MatchesEveryFourth(t *testing.T) {
	for i := range DirCount8 {
		if !vecClose(Dir8(i), Dir32(i*4)) {
			t.Errorf("Dir8(%d) = %v, want Dir32(%d) = %v", i, Dir8(i), i*4, Dir32(i*4))
		}
	}
}

func TestQuantizeRoundTrip(t *testing.T) {
	for i := range DirCount32 {
		if got := Quantize32(Dir32(i)); got != i {
			t.Errorf("Quantize32(Dir32(%d)) = %d", i, got)
		}
	}
	for i := range DirCount8 {
		if got := Quantize8(Dir8(i)); got != i {
			t.Errorf("Quantize8(Dir8(%d)) = %d", i, got)
		}
	}
}

func TestQuantizeZeroIsSouth(t *testing.T) {
	if got := Quantize32(model.Vec{}); got != 0 {
		t.Errorf("Quantize32(zero) = %d, want 0", got)
	}
	if got := Quantize8(model.Vec{}); got != 0 {
		t.Errorf("Quantize8(zero) = %d, want 0", got)
	}
}

func TestQuantizeNearestWins(t *testing.T) {
	// A vector just off east must still quantize to east.
	almostEast := model.Vec{X: 1, Y: 0.05}.Normalize()
	if got := Quantize32(almostEast); got != 24 {
		t.Errorf("Quantize32(almost east) = %d, want 24", got)
	}
}

func TestCircleSpeedScale(t *testing.T) {
	// Pure vertical travel is halved, pure horizontal is unchanged.
	if got := CircleSpeedScale(0); math.Abs(got-0.5) > dirEps {
		t.Errorf("CircleSpeedScale(0) = %v, want 0.5", got)
	}
	if got := CircleSpeedScale(8); math.Abs(got-1) > dirEps {
		t.Errorf("CircleSpeedScale(8) = %v, want 1", got)
	}
	for i := range DirCount32 {
		s := CircleSpeedScale(i)
		if s < 0.5-dirEps || s > 1+dirEps {
			t.Errorf("CircleSpeedScale(%d) = %v out of [0.5, 1]", i, s)
		}
	}
}
