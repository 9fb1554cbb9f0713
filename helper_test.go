package kepler

import (
	"fmt"
	"math"
	"testing"
	"time"
)

var testEpoch = time.Date(2017, 3, 20, 14, 45, 0, 0, time.UTC)

func assertPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("code did not panic")
		}
	}()
	f()
}

// anglesEqual returns whether two angles in radians are equal within tol, modulo 2π.
func anglesEqual(a, b, tol float64) (bool, error) {
	diff := math.Mod(math.Abs(a-b), 2*math.Pi)
	if diff < tol || 2*math.Pi-diff < tol {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10f degrees", Rad2deg(diff))
}

// leoElements is the low Earth orbit used throughout the tests: its period is
// consistent with its mean motion.
func leoElements() Elements {
	n := 0.0011
	return Elements{
		Epoch:         testEpoch,
		Period:        time.Duration(2 * math.Pi / n * float64(time.Second)),
		Eccentricity:  0.1,
		MeanMotion:    n,
		SemiMajorAxis: 7e6,
	}
}
