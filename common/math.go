package common

// BaseWidth and BaseHeight are the logical layout size every scene draws to.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// TPS is the fixed update rate of the game loop.
const TPS = 60

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
