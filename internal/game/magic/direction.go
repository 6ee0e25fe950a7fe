package magic

import (
	"math"

	"github.com/veleth/moonblade/internal/model"
)

// The compass has 32 directions. Index 0 points south (+Y on screen) and
// indices increase clockwise as seen on screen (x right, y down):
// 0 = south, 8 = west, 16 = north, 24 = east. The 8-way compass is every
// fourth index of the 32-way one, so both quantizations of the same raw
// vector agree on relative ordering.
const (
	DirCount8  = 8
	DirCount32 = 32
)

var dir32 = func() (t [DirCount32]model.Vec) {
	for i := range t {
		theta := float64(i) * 2 * math.Pi / DirCount32
		t[i] = model.Vec{X: -math.Sin(theta), Y: math.Cos(theta)}
	}
	return t
}()

// Dir32 returns the unit vector of a 32-way compass index.
func Dir32(i int) model.Vec {
	return dir32[((i%DirCount32)+DirCount32)%DirCount32]
}

// Dir8 returns the unit vector of an 8-way compass index.
func Dir8(i int) model.Vec {
	return Dir32(Expand8To32(i))
}

// Expand8To32 converts an 8-way index to its 32-way equivalent.
func Expand8To32(i8 int) int {
	return (((i8 % DirCount8) + DirCount8) % DirCount8) * 4
}

// Quantize32 maps a raw direction vector to the nearest 32-way index.
// The zero vector maps to south.
func Quantize32(v model.Vec) int {
	return quantize(v, DirCount32)
}

// Quantize8 maps a raw direction vector to the nearest 8-way index.
func Quantize8(v model.Vec) int {
	return quantize(v, DirCount8)
}

func quantize(v model.Vec, n int) int {
	if v.IsZero() {
		return 0
	}
	// Angle in the compass convention: dir(theta) = (-sin, cos).
	theta := math.Atan2(-v.X, v.Y)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	step := 2 * math.Pi / float64(n)
	return int(math.Round(theta/step)) % n
}

// CircleSpeedScale normalizes the apparent travel speed of a circle burst
// under the 2:1 screen projection: vertical motion covers half the screen
// distance of horizontal motion, so mostly-vertical directions are slowed
// to keep the expanding ring visually round.
func CircleSpeedScale(i int) float64 {
	theta := float64(i) * 2 * math.Pi / DirCount32
	sx := math.Sin(theta)
	sy := math.Cos(theta) / 2
	return math.Sqrt(sx*sx + sy*sy)
}
